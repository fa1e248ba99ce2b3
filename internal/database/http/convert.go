package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
)

func toPedido(r domain.Request) dbsdk.Pedido {
	return dbsdk.Pedido{
		ID:         r.ID,
		ClienteID:  r.ClientID,
		TipoPedido: string(r.Kind),
		Estado:     string(r.Status),
		CriadoEm:   dbsdk.FormatTime(r.CreatedAt),
		GeridoPor:  r.ManagedBy,
	}
}

func toPedidos(rs []domain.Request) []dbsdk.Pedido {
	out := make([]dbsdk.Pedido, len(rs))
	for i, r := range rs {
		out[i] = toPedido(r)
	}
	return out
}

func toPedidosPendentes(rs []domain.PendingRequest) []dbsdk.PedidoPendente {
	out := make([]dbsdk.PedidoPendente, len(rs))
	for i, r := range rs {
		out[i] = dbsdk.PedidoPendente{
			Pedido:               toPedido(r.Request),
			ClienteNome:          r.ClientName,
			ClienteEmail:         r.ClientEmail,
			ClienteDataExpiracao: dbsdk.FormatTime(r.ClientExpiresAt),
		}
	}
	return out
}

func toCliente(c domain.Client) dbsdk.Cliente {
	return dbsdk.Cliente{
		ID:            c.ID,
		Nome:          c.Name,
		Email:         c.Email,
		DataRegisto:   dbsdk.FormatTime(c.RegisteredAt),
		DataExpiracao: dbsdk.FormatTime(c.ExpiresAt),
		CriadoPor:     c.CreatedBy,
		CriadoEm:      dbsdk.FormatTime(c.CreatedAt),
	}
}

func toClientes(cs []domain.Client) []dbsdk.Cliente {
	out := make([]dbsdk.Cliente, len(cs))
	for i, c := range cs {
		out[i] = toCliente(c)
	}
	return out
}

func toAdmin(a domain.Admin) dbsdk.Admin {
	return dbsdk.Admin{
		ID:       a.ID,
		Nome:     a.Name,
		Email:    a.Email,
		Contacto: a.Contact,
		CriadoEm: dbsdk.FormatTime(a.CreatedAt),
	}
}

func toLog(e domain.LogEntry) dbsdk.Log {
	return dbsdk.Log{
		ID:        e.ID,
		ClienteID: e.ClientID,
		DemoID:    e.DemoID,
		Tipo:      string(e.Kind),
		Mensagem:  e.Message,
		Timestamp: dbsdk.FormatTime(e.Timestamp),
	}
}

func toLogs(es []domain.LogEntry) []dbsdk.Log {
	out := make([]dbsdk.Log, len(es))
	for i, e := range es {
		out[i] = toLog(e)
	}
	return out
}

func toDemo(d domain.Demo) dbsdk.Demo {
	return dbsdk.Demo{
		ID:                d.ID,
		Nome:              d.Name,
		Descricao:         d.Description,
		URL:               d.URL,
		Estado:            string(d.Status),
		Vertical:          d.Vertical,
		Horizontal:        d.Horizontal,
		Keywords:          d.Keywords,
		CodigoProjeto:     d.ProjectCode,
		ComercialNome:     d.SalesContactName,
		ComercialContacto: d.SalesContact,
		ComercialFotoURL:  d.SalesContactPhoto,
		CriadoPor:         d.CreatedBy,
		CriadoEm:          dbsdk.FormatTime(d.CreatedAt),
		AtualizadoEm:      dbsdk.FormatTime(d.UpdatedAt),
	}
}

func toDemos(ds []domain.Demo) []dbsdk.Demo {
	out := make([]dbsdk.Demo, len(ds))
	for i, d := range ds {
		out[i] = toDemo(d)
	}
	return out
}

// parseOptionalTime parses s when present. field names the JSON field in
// the returned error.
func parseOptionalTime(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dbsdk.ParseTime(*s)
	if err != nil {
		return nil, fieldError{field: field, want: "a date (YYYY-MM-DD) or an RFC 3339 timestamp"}
	}
	return &t, nil
}

type fieldError struct{ field, want string }

func (e fieldError) Error() string { return e.field + " must be " + e.want }

// limitParam reads ?limit=. Zero means "use the default".
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fieldError{field: "limit", want: "a positive integer"}
	}
	return n, nil
}

func toDockerImage(img domain.Image) dbsdk.DockerImage {
	return dbsdk.DockerImage{
		ID:           img.ID,
		NomeImagem:   img.Name,
		VersaoImagem: img.Version,
		URL:          img.URL,
		Descricao:    img.Description,
		AtualizadoEm: dbsdk.FormatTime(img.UpdatedAt),
	}
}

func toDockerImages(imgs []domain.Image) []dbsdk.DockerImage {
	out := make([]dbsdk.DockerImage, len(imgs))
	for i, img := range imgs {
		out[i] = toDockerImage(img)
	}
	return out
}

func toClientesAtivos(cs []domain.ActiveClient) []dbsdk.ClienteAtivo {
	out := make([]dbsdk.ClienteAtivo, len(cs))
	for i, c := range cs {
		out[i] = dbsdk.ClienteAtivo{
			ID:            c.ID,
			Nome:          c.Name,
			Email:         c.Email,
			DataRegisto:   dbsdk.FormatTime(c.RegisteredAt),
			DataExpiracao: dbsdk.FormatTime(c.ExpiresAt),
			DiasRestantes: c.DaysRemaining,
			AccessStatus:  c.AccessStatus,
		}
	}
	return out
}

func toDemosAtivas(ds []domain.ActiveDemo) []dbsdk.DemoAtiva {
	out := make([]dbsdk.DemoAtiva, len(ds))
	for i, d := range ds {
		out[i] = dbsdk.DemoAtiva{
			ID:            d.ID,
			Nome:          d.Name,
			Descricao:     d.Description,
			URL:           d.URL,
			Vertical:      d.Vertical,
			Horizontal:    d.Horizontal,
			CodigoProjeto: d.ProjectCode,
			CriadoEm:      dbsdk.FormatTime(d.CreatedAt),
			CriadorNome:   d.CreatorName,
			CriadorEmail:  d.CreatorEmail,
		}
	}
	return out
}

func toClienteStats(s domain.ClientStats) dbsdk.ClienteStats {
	out := dbsdk.ClienteStats{
		ID:          s.ClientID,
		Nome:        s.Name,
		Email:       s.Email,
		DemosOpened: s.DemosOpened,
		TotalOpens:  s.TotalOpens,
		TotalLogins: s.TotalLogins,
	}
	if s.LastActivity != nil {
		ts := dbsdk.FormatTime(*s.LastActivity)
		out.UltimaAtividade = &ts
	}
	return out
}

func toClientesStats(ss []domain.ClientStats) []dbsdk.ClienteStats {
	out := make([]dbsdk.ClienteStats, len(ss))
	for i, s := range ss {
		out[i] = toClienteStats(s)
	}
	return out
}
