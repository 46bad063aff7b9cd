package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type recordingQuery struct {
	paths []string
	res   []byte
	err   error
}

func (q *recordingQuery) query(path string) ([]byte, error) {
	q.paths = append(q.paths, path)
	return q.res, q.err
}

func serve(route string, handler http.HandlerFunc, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(route, handler).Methods("GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	return w
}

func TestProphecyReqHandler(t *testing.T) {
	q := &recordingQuery{res: []byte(`{"id":"ABCD"}`)}
	w := serve("/prophecies/{hash}", ProphecyReqHandler(q.query), "/prophecies/abcd")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, `{"id":"ABCD"}`, w.Body.String())
	require.Equal(t, []string{"/bridge/prophecy/ABCD"}, q.paths)
}

func TestStrikesReqHandler(t *testing.T) {
	validator := sdk.ValAddress([]byte("validator___________"))
	q := &recordingQuery{res: []byte(`{"strikes":"2"}`)}

	w := serve("/strikes/{validator}", StrikesReqHandler(q.query), "/strikes/"+validator.String())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"/bridge/strikes/" + validator.String()}, q.paths)

	w = serve("/strikes/{validator}", StrikesReqHandler(q.query), "/strikes/nope")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, q.paths, 1)
}

func TestInvitationReqHandler_Errors(t *testing.T) {
	validator := sdk.ValAddress([]byte("validator___________"))

	q := &recordingQuery{err: errors.New("invitation not found")}
	w := serve("/invitations/{validator}", InvitationReqHandler(q.query), "/invitations/"+validator.String())
	require.Equal(t, http.StatusNotFound, w.Code)

	q = &recordingQuery{err: errors.New("connection refused")}
	w = serve("/invitations/{validator}", InvitationReqHandler(q.query), "/invitations/"+validator.String())
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUnpegAndSequenceReqHandler(t *testing.T) {
	q := &recordingQuery{res: []byte(`{}`)}
	serve("/unpegs/{sequence}", UnpegReqHandler(q.query), "/unpegs/12")
	serve("/sequence", SequenceReqHandler(q.query), "/sequence")
	require.Equal(t, []string{"/bridge/unpeg/12", "/bridge/sequence"}, q.paths)

	q = &recordingQuery{}
	w := serve("/sequence", SequenceReqHandler(q.query), "/sequence")
	require.Equal(t, http.StatusNoContent, w.Code)
}
