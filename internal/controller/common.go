package controller

import (
	"database/sql"
	"net/url"

	"dontverifyme/internal/cache"
	"dontverifyme/internal/common"
	"dontverifyme/internal/queue"
	"dontverifyme/internal/storage"
)

const (
	sessionCachePrefix      = "session"
	mfaChallengeCachePrefix = "mfa-challenge"

	emailQueueId      = "controller"
	emailQueueStream  = "controller"
	emailQueueSubject = "email"
	emailConsumerId   = "controller-email"
)

var apiKeys []string
var cacheInstance cache.Cache
var db *sql.DB
var iconStore *storage.IconStore
var publicServerUrl *url.URL
var queueInstance queue.Queue
var serviceLogs *chan<- common.ServiceLog
