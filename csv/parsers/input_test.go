package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHeader = "Date,Type,Asset,Quantity,USD_Value,From,To,Tx_Hash\n"

func TestReadRawTransactions(t *testing.T) {
	input := validHeader +
		"2024-01-05,buy,BTC,1,40000,0xa,0xb,0x1\n" +
		"2024-02-10,sell,ETH,2.50,5000.00,0xc,0xd,0x2\n"

	records, err := ReadRawTransactions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024-01-05", records[0].Date)
	assert.Equal(t, "buy", records[0].Type)
	assert.Equal(t, "BTC", records[0].Asset)
	assert.Equal(t, "1", records[0].Quantity.String())
	assert.Equal(t, "0x1", records[0].TxHash)
	assert.Equal(t, "2.5", records[1].Quantity.String())
	assert.Equal(t, int32(-2), records[1].Quantity.Exponent())
}

func TestReadRawTransactionsColumnOrderAndExtras(t *testing.T) {
	input := "\ufeffTx_Hash,Notes,To,From,USD_Value,Quantity,Asset,Type,Date\n" +
		"0x1,ignored,0xb,0xa,100,4,SOL,trade,2024-05-01\n"

	records, err := ReadRawTransactions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-05-01", records[0].Date)
	assert.Equal(t, "trade", records[0].Type)
	assert.Equal(t, "100", records[0].USDValue.String())
	assert.Equal(t, "0xa", records[0].From)
}

func TestReadRawTransactionsMissingColumns(t *testing.T) {
	input := "Date,Type,Asset,Quantity,From,To\n2024-01-05,buy,BTC,1,0xa,0xb\n"

	_, err := ReadRawTransactions(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Contains(t, err.Error(), "USD_Value")
	assert.Contains(t, err.Error(), "Tx_Hash")
}

func TestReadRawTransactionsEmptyInput(t *testing.T) {
	_, err := ReadRawTransactions(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestReadRawTransactionsHeaderOnly(t *testing.T) {
	records, err := ReadRawTransactions(strings.NewReader(validHeader))
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadRawTransactionsBadQuantity(t *testing.T) {
	input := validHeader +
		"2024-01-05,buy,BTC,1,40000,0xa,0xb,0x1\n" +
		"2024-01-06,buy,BTC,one,40000,0xa,0xb,0x2\n"

	_, err := ReadRawTransactions(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, "2024-01-06", rowErr.Date)
	assert.Equal(t, ColumnQuantity, rowErr.Column)
	assert.Equal(t, "one", rowErr.Value)
}

func TestReadRawTransactionsBadUSDValue(t *testing.T) {
	for _, value := range []string{"", "NaN", "12,5", "$10"} {
		input := validHeader + "2024-01-05,buy,BTC,1,\"" + value + "\",0xa,0xb,0x1\n"

		_, err := ReadRawTransactions(strings.NewReader(input))
		var rowErr *RowError
		require.Truef(t, errors.As(err, &rowErr), "value %q should fail", value)
		assert.Equal(t, ColumnUSDValue, rowErr.Column)
		assert.Equal(t, 1, rowErr.Row)
	}
}

func TestReadRawTransactionsShortRow(t *testing.T) {
	input := validHeader + "2024-01-05,buy,BTC\n"

	_, err := ReadRawTransactions(strings.NewReader(input))
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, ColumnQuantity, rowErr.Column)
}

func TestReadRawTransactionsExponentBound(t *testing.T) {
	for _, value := range []string{"1e-5000000", "1e65", "1E-65"} {
		input := validHeader + "2024-01-05,buy,BTC," + value + ",1,0xa,0xb,0x1\n"

		_, err := ReadRawTransactions(strings.NewReader(input))
		var rowErr *RowError
		require.Truef(t, errors.As(err, &rowErr), "quantity %q should fail", value)
		assert.Equal(t, ColumnQuantity, rowErr.Column)
		assert.Equal(t, value, rowErr.Value)
		assert.ErrorIs(t, err, ErrExponentOutOfRange)
		assert.ErrorIs(t, err, ErrMalformedInput)
	}

	input := validHeader + "2024-01-05,buy,BTC,1,1e70,0xa,0xb,0x1\n"
	_, err := ReadRawTransactions(strings.NewReader(input))
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, ColumnUSDValue, rowErr.Column)

	input = validHeader + "2024-01-05,buy,BTC,1e-64,1e64,0xa,0xb,0x1\n"
	records, err := ReadRawTransactions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int32(-64), records[0].Quantity.Exponent())
}
