package application

import "expvar"

var (
	metricRegistrations  = expvar.NewInt("auth_registrations_total")
	metricLogins         = expvar.NewInt("auth_logins_total")
	metricLoginFailures  = expvar.NewInt("auth_login_failures_total")
	metricLogouts        = expvar.NewInt("auth_logouts_total")
	metricStaleSessions  = expvar.NewInt("gate_stale_sessions_total")
	metricProfileUpdates = expvar.NewInt("profile_updates_total")
)
