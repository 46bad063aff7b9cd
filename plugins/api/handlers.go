package api

import (
	"net/http"

	hnd "github.com/lcnem/proximax-pegzone/plugins/api/handlers"
)

func (s *server) handleVersionReq() http.HandlerFunc {
	return hnd.CLIVersionReqHandler
}

func (s *server) handleNodeVersionReq() http.HandlerFunc {
	return hnd.NodeVersionReqHandler(s.query)
}

func (s *server) handleAccountReq() http.HandlerFunc {
	return hnd.AccountReqHandler(s.cdc, s.query)
}

func (s *server) handleProphecyReq() http.HandlerFunc {
	return hnd.ProphecyReqHandler(s.query)
}

func (s *server) handleInvitationReq() http.HandlerFunc {
	return hnd.InvitationReqHandler(s.query)
}

func (s *server) handleStrikesReq() http.HandlerFunc {
	return hnd.StrikesReqHandler(s.query)
}

func (s *server) handleUnpegReq() http.HandlerFunc {
	return hnd.UnpegReqHandler(s.query)
}

func (s *server) handleSequenceReq() http.HandlerFunc {
	return hnd.SequenceReqHandler(s.query)
}
