package mainchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	multisigAddress = "VBIXVY6I4FMPRLDAIC5RWJSGK7X2QZNO42IEV3UL"
	multisigHex     = "A8517AE3C8E158F8AC6040BB1B264657EFA865AEE6904AEE8B"
	cosmosAddress   = "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
)

var transactionsJSON = `[
  {
    "meta": {"hash": "aa01", "height": [10, 0]},
    "transaction": {
      "type": 16724,
      "signer": "b1",
      "recipient": "` + multisigHex + `",
      "mosaics": [{"id": [481110499, 231112638], "amount": [5000000, 0]}],
      "message": {"type": 0, "payload": "` + EncodeMessage(cosmosAddress) + `"}
    }
  },
  {
    "meta": {"hash": "aa02", "height": 11},
    "transaction": {
      "type": 16961,
      "signer": "c1",
      "cosignatures": [{"signer": "c2"}],
      "transactions": [
        {"transaction": {"type": 16725, "signer": "d1",
          "modifications": [{"type": 0, "cosignatoryPublicKey": "e1"}, {"type": 1, "cosignatoryPublicKey": "e2"}]}},
        {"transaction": {"type": 16724, "signer": "d1", "recipient": "` + multisigHex + `",
          "mosaics": [{"id": [1, 0], "amount": 7}]}}
      ]
    }
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig(server.URL)
	cfg.RetryMax = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	cfg.RequestsPerSecond = 1000
	client, err := NewClient(cfg, log.NewNopLogger())
	require.NoError(t, err)
	return client
}

func TestTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account/"+multisigAddress+"/transactions", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("pageSize"))
		w.Write([]byte(transactionsJSON))
	})

	txs, err := client.Transactions(context.Background(), multisigAddress)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	transfer := txs[0].Transfers[0]
	require.Equal(t, "AA01", transfer.Hash)
	require.Equal(t, "AA01", transfer.TxHash)
	require.Equal(t, uint64(10), transfer.Height)
	require.Equal(t, multisigAddress, transfer.Recipient)
	require.Equal(t, cosmosAddress, transfer.Message)
	require.Equal(t, uint64(5000000), transfer.Amount(XPXMosaicID))
	require.Equal(t, uint64(0), transfer.Amount("0000000000000001"))

	aggregate := txs[1]
	require.Equal(t, int64(AggregateBondedType), aggregate.Type)
	require.Equal(t, uint64(11), aggregate.Height)
	require.Equal(t, []string{"C2"}, aggregate.Cosigners)
	require.Len(t, aggregate.Modifications, 1)
	require.Equal(t, []string{"E1"}, aggregate.Modifications[0].Added)
	require.Equal(t, []string{"E2"}, aggregate.Modifications[0].Removed)
	require.Equal(t, "D1", aggregate.Modifications[0].Multisig)
	require.Len(t, aggregate.Transfers, 1)
	require.Equal(t, DepositID("AA02", 1), aggregate.Transfers[0].Hash)
	require.Equal(t, "AA02", aggregate.Transfers[0].TxHash)
	require.Equal(t, uint64(7), aggregate.Transfers[0].Amount("0000000000000001"))
}

func TestAggregateDepositsGetTheirOwnID(t *testing.T) {
	inner := `{"transaction": {"type": 16724, "signer": "d1", "recipient": "` + multisigHex + `",
	  "mosaics": [{"id": [481110499, 231112638], "amount": 5}]}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"meta": {"hash": "ab12", "height": 3},
		  "transaction": {"type": 16705, "signer": "c1", "transactions": [` + inner + `,` + inner + `]}}]`))
	})

	txs, err := client.Transactions(context.Background(), multisigAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Len(t, txs[0].Transfers, 2)

	first, second := txs[0].Transfers[0], txs[0].Transfers[1]
	require.NotEqual(t, first.Hash, second.Hash)
	require.Len(t, first.Hash, 64)
	require.Len(t, second.Hash, 64)
	require.Equal(t, "AB12", first.TxHash)
	require.Equal(t, DepositID("ab12", 0), first.Hash)
}

func TestUnreadableTransactionIsSkipped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
		  {"meta": {"hash": "aa09"}, "transaction": {"type": 16724, "recipient": "not hex"}},
		  {"meta": {}, "transaction": {"type": 16724}},
		  {"meta": {"hash": "aa10"}, "transaction": {"type": 16724, "recipient": "` + multisigHex + `"}}
		]`))
	})

	txs, err := client.Transactions(context.Background(), multisigAddress)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "AA10", txs[0].Hash)
	require.Equal(t, multisigAddress, txs[0].Transfers[0].Recipient)
}

func TestPartialTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account/PK/transactions/partial", r.URL.Path)
		w.Write([]byte(`[]`))
	})
	txs, err := client.PartialTransactions(context.Background(), "PK")
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestTransactionStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transaction/AA01/status":
			w.Write([]byte(`{"hash": "aa01", "group": "confirmed", "status": "Success"}`))
		default:
			http.NotFound(w, r)
		}
	})

	status, err := client.TransactionStatus(context.Background(), "AA01")
	require.NoError(t, err)
	require.Equal(t, "AA01", status.Hash)
	require.True(t, status.Confirmed())

	_, err = client.TransactionStatus(context.Background(), "BB")
	require.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestAccountPublicKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/KNOWN":
			w.Write([]byte(`{"account": {"publicKey": "abcdef"}}`))
		default:
			w.Write([]byte(`{"account": {"publicKey": "0000000000"}}`))
		}
	})

	pk, err := client.AccountPublicKey(context.Background(), "KNOWN")
	require.NoError(t, err)
	require.Equal(t, "ABCDEF", pk)

	pk, err = client.AccountPublicKey(context.Background(), "FRESH")
	require.NoError(t, err)
	require.Empty(t, pk)
}

func TestServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	_, err := client.Transactions(context.Background(), multisigAddress)
	require.Error(t, err)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	})
	_, err = client.Transactions(context.Background(), multisigAddress)
	require.Error(t, err)
}
