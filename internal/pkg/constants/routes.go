package constants

// API route constants, relative to APIPrefix. Strict routing is enabled, so
// the trailing slash is part of every route.
const (
	APIPrefix = "/api"

	PingRoute        = "/"
	AuthRoute        = "/auth/"
	UserRoute        = "/user/"
	SurveyQRRoute    = "/user/survey-code/qr/"
	PayerRoute       = "/payer/"
	TransactionRoute = "/transaction/"
	PlanOptionRoute  = "/paymentplan/"
	PaymentRoute     = "/payment/"

	// CreateSuffix and DetailSuffix are appended to the resource routes.
	CreateSuffix = "create/"
	DetailSuffix = ":id/"
)

// Routes outside the API group
const (
	MetricsRoute = "/metrics"
	DocsBasePath = "/docs/api/"
	DocsPath     = "v1"
)
