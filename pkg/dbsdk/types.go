package dbsdk

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the UTC timestamp format used on the wire and in storage.
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatTime renders t in TimeLayout, or "" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts RFC 3339 timestamps, "YYYY-MM-DD HH:MM:SS" and bare
// dates, all read as UTC when no offset is given.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("dbsdk: unrecognised timestamp %q", s)
}

// Pedido request kinds and statuses.
const (
	TipoRenovacao = "renovação"
	TipoRevogacao = "revogação"

	EstadoPendente  = "pendente"
	EstadoAprovado  = "aprovado"
	EstadoRejeitado = "rejeitado"
)

type Pedido struct {
	ID         string  `json:"id"`
	ClienteID  string  `json:"cliente_id"`
	TipoPedido string  `json:"tipo_pedido"`
	Estado     string  `json:"estado"`
	CriadoEm   string  `json:"criado_em"`
	GeridoPor  *string `json:"gerido_por"`
}

// PedidoPendente is a pending request joined with its client.
type PedidoPendente struct {
	Pedido
	ClienteNome          string `json:"cliente_nome"`
	ClienteEmail         string `json:"cliente_email"`
	ClienteDataExpiracao string `json:"cliente_data_expiracao"`
}

type CreatePedidoRequest struct {
	ClienteID  string `json:"cliente_id"`
	TipoPedido string `json:"tipo_pedido"`
}

// ResolvePedidoRequest is the body of approve and reject.
// NovaDataExpiracao is only honoured by approve.
type ResolvePedidoRequest struct {
	AdminID           string  `json:"admin_id"`
	NovaDataExpiracao *string `json:"nova_data_expiracao,omitempty"`
}

type Cliente struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	DataRegisto   string `json:"data_registo"`
	DataExpiracao string `json:"data_expiracao"`
	CriadoPor     string `json:"criado_por"`
	CriadoEm      string `json:"criado_em"`
}

// ClienteWithPassword is only served to the authentication service.
type ClienteWithPassword struct {
	Cliente
	PasswordHash string `json:"password_hash"`
}

type CreateClienteRequest struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	PasswordHash  string `json:"password_hash"`
	DataRegisto   string `json:"data_registo,omitempty"`
	DataExpiracao string `json:"data_expiracao"`
	CriadoPor     string `json:"criado_por"`
}

type UpdateClienteRequest struct {
	Nome          *string `json:"nome,omitempty"`
	Email         *string `json:"email,omitempty"`
	PasswordHash  *string `json:"password_hash,omitempty"`
	DataExpiracao *string `json:"data_expiracao,omitempty"`
}

type ExtendClienteRequest struct {
	NovaDataExpiracao string `json:"nova_data_expiracao"`
}

type Admin struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome"`
	Email    string  `json:"email"`
	Contacto *string `json:"contacto"`
	CriadoEm string  `json:"criado_em"`
}

type AdminWithPassword struct {
	Admin
	PasswordHash string `json:"password_hash"`
}

type CreateAdminRequest struct {
	Nome         string  `json:"nome"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	Contacto     *string `json:"contacto,omitempty"`
}

// Log kinds.
const (
	LogLogin           = "login"
	LogLogout          = "logout"
	LogDemoAberta      = "demo_aberta"
	LogDemoFechada     = "demo_fechada"
	LogAcessoConcedido = "acesso_concedido"
	LogAcessoRevogado  = "acesso_revogado"
	LogErro            = "erro"
	LogAviso           = "aviso"
)

type Log struct {
	ID        string  `json:"id"`
	ClienteID *string `json:"cliente_id"`
	DemoID    *string `json:"demo_id"`
	Tipo      string  `json:"tipo"`
	Mensagem  *string `json:"mensagem"`
	Timestamp string  `json:"timestamp"`
}

type CreateLogRequest struct {
	ClienteID *string `json:"cliente_id,omitempty"`
	DemoID    *string `json:"demo_id,omitempty"`
	Tipo      string  `json:"tipo"`
	Mensagem  *string `json:"mensagem,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
}

type LogStats struct {
	Tipo           string `json:"tipo"`
	Total          int    `json:"total"`
	ClientesUnicos int    `json:"clientes_unicos"`
	DemosUnicas    int    `json:"demos_unicas"`
}

type Demo struct {
	ID                string  `json:"id"`
	Nome              string  `json:"nome"`
	Descricao         *string `json:"descricao"`
	URL               *string `json:"url"`
	Estado            string  `json:"estado"`
	Vertical          *string `json:"vertical"`
	Horizontal        *string `json:"horizontal"`
	Keywords          *string `json:"keywords"`
	CodigoProjeto     *string `json:"codigo_projeto"`
	ComercialNome     *string `json:"comercial_nome"`
	ComercialContacto *string `json:"comercial_contacto"`
	ComercialFotoURL  *string `json:"comercial_foto_url"`
	CriadoPor         string  `json:"criado_por"`
	CriadoEm          string  `json:"criado_em"`
	AtualizadoEm      string  `json:"atualizado_em"`
}

type CreateDemoRequest struct {
	Nome              string  `json:"nome"`
	Descricao         *string `json:"descricao,omitempty"`
	URL               *string `json:"url,omitempty"`
	Estado            string  `json:"estado,omitempty"`
	Vertical          *string `json:"vertical,omitempty"`
	Horizontal        *string `json:"horizontal,omitempty"`
	Keywords          *string `json:"keywords,omitempty"`
	CodigoProjeto     *string `json:"codigo_projeto,omitempty"`
	ComercialNome     *string `json:"comercial_nome,omitempty"`
	ComercialContacto *string `json:"comercial_contacto,omitempty"`
	ComercialFotoURL  *string `json:"comercial_foto_url,omitempty"`
	CriadoPor         string  `json:"criado_por"`
}

type UpdateDemoRequest struct {
	Nome              *string `json:"nome,omitempty"`
	Descricao         *string `json:"descricao,omitempty"`
	URL               *string `json:"url,omitempty"`
	Estado            *string `json:"estado,omitempty"`
	Vertical          *string `json:"vertical,omitempty"`
	Horizontal        *string `json:"horizontal,omitempty"`
	Keywords          *string `json:"keywords,omitempty"`
	CodigoProjeto     *string `json:"codigo_projeto,omitempty"`
	ComercialNome     *string `json:"comercial_nome,omitempty"`
	ComercialContacto *string `json:"comercial_contacto,omitempty"`
	ComercialFotoURL  *string `json:"comercial_foto_url,omitempty"`
}

type DockerImage struct {
	ID           string  `json:"id"`
	NomeImagem   string  `json:"nome_imagem"`
	VersaoImagem string  `json:"versao_imagem"`
	URL          string  `json:"url"`
	Descricao    *string `json:"descricao"`
	AtualizadoEm string  `json:"atualizado_em"`
}

type CreateDockerImageRequest struct {
	NomeImagem   string  `json:"nome_imagem"`
	VersaoImagem string  `json:"versao_imagem"`
	URL          string  `json:"url"`
	Descricao    *string `json:"descricao,omitempty"`
}

type UpdateDockerImageRequest struct {
	NomeImagem   *string `json:"nome_imagem,omitempty"`
	VersaoImagem *string `json:"versao_imagem,omitempty"`
	URL          *string `json:"url,omitempty"`
	Descricao    *string `json:"descricao,omitempty"`
}

// ClienteAtivo is a row of /db/views/active-clients. AccessStatus is
// "ativo" or "a_expirar".
type ClienteAtivo struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	DataRegisto   string `json:"data_registo"`
	DataExpiracao string `json:"data_expiracao"`
	DiasRestantes int    `json:"dias_restantes"`
	AccessStatus  string `json:"access_status"`
}

// DemoAtiva is a row of /db/views/active-demos.
type DemoAtiva struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Descricao     *string `json:"descricao"`
	URL           *string `json:"url"`
	Vertical      *string `json:"vertical"`
	Horizontal    *string `json:"horizontal"`
	CodigoProjeto *string `json:"codigo_projeto"`
	CriadoEm      string  `json:"criado_em"`
	CriadorNome   string  `json:"criador_nome"`
	CriadorEmail  string  `json:"criador_email"`
}

// ClienteStats is a row of /db/views/client-stats.
type ClienteStats struct {
	ID              string  `json:"id"`
	Nome            string  `json:"nome"`
	Email           string  `json:"email"`
	DemosOpened     int     `json:"demos_opened"`
	TotalOpens      int     `json:"total_opens"`
	TotalLogins     int     `json:"total_logins"`
	UltimaAtividade *string `json:"ultima_atividade"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists dependency states reported by /readyz.
type HealthChecks struct {
	Database   string `json:"database,omitempty"`
	Migrations string `json:"migrations,omitempty"`
	Upstream   string `json:"upstream,omitempty"`
}
