package main

type testStatusService struct {
	handler *apiHandler
	addr    string
	stopped bool
}

func (t *testStatusService) launch(handler *apiHandler, addr string) {
	t.handler = handler
	t.addr = addr
}

func (t *testStatusService) stop() {
	t.stopped = true
}
