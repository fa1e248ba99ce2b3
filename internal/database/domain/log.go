package domain

import "time"

type LogKind string

const (
	LogLogin         LogKind = "login"
	LogLogout        LogKind = "logout"
	LogDemoOpened    LogKind = "demo_aberta"
	LogDemoClosed    LogKind = "demo_fechada"
	LogAccessGranted LogKind = "acesso_concedido"
	LogAccessRevoked LogKind = "acesso_revogado"
	LogError         LogKind = "erro"
	LogWarning       LogKind = "aviso"
)

func (k LogKind) Valid() bool {
	switch k {
	case LogLogin, LogLogout, LogDemoOpened, LogDemoClosed,
		LogAccessGranted, LogAccessRevoked, LogError, LogWarning:
		return true
	}
	return false
}

// LogEntry is an append-only audit record. Entries are never updated.
type LogEntry struct {
	ID        string
	ClientID  *string
	DemoID    *string
	Kind      LogKind
	Message   *string
	Timestamp time.Time
}

// LogStats aggregates log entries of a single kind.
type LogStats struct {
	Kind            LogKind
	Total           int
	DistinctClients int
	DistinctDemos   int
}
