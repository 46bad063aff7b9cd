package api

const version = "v1"
const prefix = "/api/" + version

func (s *server) bindRoutes() *server {
	r := s.router

	// version routes
	r.HandleFunc("/version", s.handleVersionReq()).
		Methods("GET")
	r.HandleFunc("/node_version", s.handleNodeVersionReq()).
		Methods("GET")

	r.HandleFunc(prefix+"/account/{address}", s.handleAccountReq()).
		Methods("GET")

	// bridge routes
	r.HandleFunc(prefix+"/bridge/prophecies/{hash:[0-9a-fA-F]+}", s.handleProphecyReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/bridge/invitations/{validator}", s.handleInvitationReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/bridge/strikes/{validator}", s.handleStrikesReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/bridge/unpegs/{sequence:[0-9]+}", s.handleUnpegReq()).
		Methods("GET")
	r.HandleFunc(prefix+"/bridge/sequence", s.handleSequenceReq()).
		Methods("GET")

	return s
}
