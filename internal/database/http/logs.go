package http

import (
	"net/http"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/httpx"
)

// LogsHandler serves /db/logs.
type LogsHandler struct {
	Service *service.LogService
}

// listFn is one of the filtered listings. The limit has already been parsed.
type listFn func(r *http.Request, limit int) ([]domain.LogEntry, error)

func (h *LogsHandler) list(fn listFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := limitParam(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		list, err := fn(r, limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toLogs(list))
	}
}

func (h *LogsHandler) HandleList() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]domain.LogEntry, error) {
		return h.Service.List(r.Context(), limit)
	})
}

func (h *LogsHandler) HandleListByCliente() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]domain.LogEntry, error) {
		return h.Service.ListByClient(r.Context(), r.PathValue("cliente_id"), limit)
	})
}

func (h *LogsHandler) HandleListByDemo() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]domain.LogEntry, error) {
		return h.Service.ListByDemo(r.Context(), r.PathValue("demo_id"), limit)
	})
}

func (h *LogsHandler) HandleListByTipo() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]domain.LogEntry, error) {
		return h.Service.ListByKind(r.Context(), domain.LogKind(r.PathValue("tipo")), limit)
	})
}

func (h *LogsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLog(e))
}

func (h *LogsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dbsdk.CreateLogRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ts, err := parseOptionalTime("timestamp", req.Timestamp)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	in := service.NewLog{
		ClientID: req.ClienteID,
		DemoID:   req.DemoID,
		Kind:     domain.LogKind(req.Tipo),
		Message:  req.Mensagem,
	}
	if ts != nil {
		in.Timestamp = *ts
	}

	e, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toLog(e))
}

func (h *LogsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LogsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]dbsdk.LogStats, len(stats))
	for i, s := range stats {
		out[i] = dbsdk.LogStats{
			Tipo:           string(s.Kind),
			Total:          s.Total,
			ClientesUnicos: s.DistinctClients,
			DemosUnicas:    s.DistinctDemos,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
