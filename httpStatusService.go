package main

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/net/context"
)

type httpStatusService struct {
	srv     *http.Server
	handler *apiHandler
	done    chan struct{}
}

func (h *httpStatusService) launch(handler *apiHandler, addr string) {
	h.handler = handler
	h.srv = &http.Server{Addr: addr, Handler: handler.router()}
	h.done = make(chan struct{})

	// launch the server
	go func() {
		defer close(h.done)
		log.Printf("starting status service http server on %s", addr)
		err := h.srv.ListenAndServe()
		if err != http.ErrServerClosed {
			log.Print(err)
		}
		log.Print("Exiting status service")
	}()
}

func (h *httpStatusService) stop() {
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	h.srv.Shutdown(ctx)
	<-h.done
}
