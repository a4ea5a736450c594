package controller

import (
	"dontverifyme/internal/common"

	"github.com/gorilla/mux"
)

type commonHttpResponse common.HttpResponse

type RouteRegistrationOpts struct {
	ApiKeys     []string
	Router      *mux.Router
	ServiceLogs chan<- common.ServiceLog
}
