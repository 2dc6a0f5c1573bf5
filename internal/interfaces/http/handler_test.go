package httpinterface_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/luckyspind/internal/core/application"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/infrastructure/signer"
	"github.com/tdex-network/luckyspind/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/tdex-network/luckyspind/internal/interfaces/http"
)

const pubkey = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func newTestServer(t *testing.T) *httptest.Server {
	repoManager := inmemory.NewRepoManager()
	queueSigner, err := signer.NewQueueSigner(
		repoManager.SigningDirectiveRepository(),
	)
	require.NoError(t, err)
	processor, err := application.NewProcessor(
		queueSigner, application.DefaultTicketPrice,
	)
	require.NoError(t, err)
	runtimeSvc, err := application.NewRuntimeService(
		repoManager, processor, domain.Pubkey{}, 1024,
	)
	require.NoError(t, err)

	server := httptest.NewServer(httpinterface.NewRouter(runtimeSvc, 1000))
	t.Cleanup(server.Close)
	return server
}

func TestLuckySpinFlow(t *testing.T) {
	server := newTestServer(t)

	status, _ := post(t, server.URL+"/v1/account", map[string]string{
		"pubkey": pubkey,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = post(t, server.URL+"/v1/account", map[string]string{
		"pubkey": pubkey,
	})
	require.Equal(t, http.StatusConflict, status)

	for _, data := range [][]byte{
		encode(t, domain.OpcodeDeposit, domain.DepositRequest{
			Instruction: domain.DepositInitialize,
		}),
		encode(t, domain.OpcodeDeposit, domain.DepositRequest{
			Instruction: domain.DepositApply,
			Txid:        "abc123",
			Satoshi:     50000,
			RuneID:      "RUNE1",
		}),
		encode(t, domain.OpcodeSwap, domain.SwapRequest{
			Txid:   "abc123",
			SwapTx: serializedSwapTx(t),
		}),
	} {
		status, body := execute(t, server.URL, data)
		require.Equal(t, http.StatusOK, status, body)
	}

	var state map[string]interface{}
	status = get(t, server.URL+"/v1/account/"+pubkey, &state)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, state["initialized"])
	require.Len(t, state["deposits"], 1)
	settlement := state["settlement"].(map[string]interface{})
	require.Equal(t, true, settlement["pending"])
	require.Equal(t, float64(1), settlement["count"])

	var directives []map[string]interface{}
	status = get(t, server.URL+"/v1/directives?account="+pubkey, &directives)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, directives, 1)
	require.Equal(t, settlement["swap_txid"], directives[0]["txid"])
}

func TestFailingRequests(t *testing.T) {
	server := newTestServer(t)

	status, _ := post(t, server.URL+"/v1/account", map[string]string{
		"pubkey": "nothex",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, server.URL+"/v1/account", map[string]string{
		"unknown": pubkey,
	})
	require.Equal(t, http.StatusBadRequest, status)

	status = get(t, server.URL+"/v1/account/"+pubkey, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = execute(t, server.URL, []byte{0})
	require.Equal(t, http.StatusNotFound, status)

	status, _ = post(t, server.URL+"/v1/account", map[string]string{
		"pubkey": pubkey,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = execute(t, server.URL, []byte{0x05})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, server.URL+"/v1/instruction", map[string]string{
		"account": pubkey, "data": "zz",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestMetrics(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func encode(t *testing.T, op domain.Opcode, req interface{}) []byte {
	data, err := domain.EncodeInstruction(op, req)
	require.NoError(t, err)
	return data
}

func serializedSwapTx(t *testing.T) []byte {
	tx := wire.NewMsgTx(2)
	for i := 0; i < 2; i++ {
		hash := chainhash.DoubleHashH([]byte{byte(i)})
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&hash, 0), nil, nil))
	}
	tx.AddTxOut(wire.NewTxOut(50000, bytes.Repeat([]byte{0x51}, 34)))

	raw, err := domain.SerializeTransaction(tx)
	require.NoError(t, err)
	return raw
}

func execute(t *testing.T, url string, data []byte) (int, string) {
	return post(t, url+"/v1/instruction", map[string]string{
		"account": pubkey,
		"data":    hex.EncodeToString(data),
	})
}

func post(t *testing.T, url string, body interface{}) (int, string) {
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()

	var respBody bytes.Buffer
	_, err = respBody.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody.String()
}

func get(t *testing.T, url string, v interface{}) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}
