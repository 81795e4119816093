package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-contactform/pkg/contract"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
)

type handlers struct {
	orch     *orchestrator.Orchestrator
	contract *contract.Contract
	logger   *log.Logger
}

// problem is the body of 400 responses.
type problem struct {
	Error  string              `json:"error"`
	Issues map[string][]string `json:"issues,omitempty"`
}

func (h *handlers) showForm(w http.ResponseWriter, r *http.Request) {
	resp, err := h.orch.Generate(r.Context(), orchestrator.Request{
		FormID:        r.URL.Query().Get("form"),
		RenderOptions: render.RenderOptions{Action: r.URL.Path},
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, http.StatusOK, resp.ContentType, resp.Body)
}

func (h *handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, problem{Error: "malformed form body"})
		return
	}

	resp, err := h.orch.Generate(r.Context(), orchestrator.Request{
		FormID: r.URL.Query().Get("form"),
		Values: postedValues(r.PostForm),
		Submit: true,
		RenderOptions: render.RenderOptions{
			Action:   r.URL.Path,
			Fragment: wantsFragment(r),
		},
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, statusFor(resp.Snapshot), resp.ContentType, resp.Body)
}

func (h *handlers) submitJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, problem{Error: "request body too large"})
			return
		}
		writeProblem(w, http.StatusBadRequest, problem{Error: "unreadable request body"})
		return
	}

	payload, err := h.contract.DecodeSubmission(body)
	if err != nil {
		var bodyErr *contract.BodyError
		if !errors.As(err, &bodyErr) {
			h.fail(w, err)
			return
		}
		writeProblem(w, http.StatusBadRequest, h.mapIssues(r, bodyErr))
		return
	}

	resp, err := h.orch.Generate(r.Context(), orchestrator.Request{
		FormID:   r.URL.Query().Get("form"),
		Values:   contract.FormValues(payload),
		Submit:   true,
		Renderer: "json",
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, statusFor(resp.Snapshot), resp.ContentType, resp.Body)
}

// mapIssues re-keys schema violations by control name so API clients can
// attach them to the same inputs as validation messages.
func (h *handlers) mapIssues(r *http.Request, bodyErr *contract.BodyError) problem {
	out := problem{Error: contract.ErrInvalidBody.Error(), Issues: bodyErr.Issues}
	ctrl, err := h.orch.NewController(r.Context(), r.URL.Query().Get("form"))
	if err != nil {
		return out
	}
	defer ctrl.Close()

	mapping := render.MapErrorPayload(ctrl.Form(), bodyErr.Issues)
	issues := make(map[string][]string, len(mapping.Controls)+1)
	for name, messages := range mapping.Controls {
		issues[name] = messages
	}
	if len(mapping.Form) > 0 {
		issues["form"] = mapping.Form
	}
	out.Issues = issues
	return out
}

func (h *handlers) openAPI(w http.ResponseWriter, _ *http.Request) {
	body, err := h.contract.JSON()
	if err != nil {
		h.fail(w, err)
		return
	}
	write(w, http.StatusOK, "application/json", body)
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, orchestrator.ErrUnknownForm) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	h.logger.Error("request failed", "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// statusFor maps the outcome of a pass onto an HTTP status.
func statusFor(snap render.Snapshot) int {
	switch {
	case snap.Phase == render.PhaseConfirmed:
		return http.StatusOK
	case snap.Phase == render.PhaseErrorsShown:
		return http.StatusUnprocessableEntity
	case snap.Banner != nil && snap.Banner.Kind == render.BannerError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

// postedValues folds "services[]" style keys onto the control name.
func postedValues(form map[string][]string) map[string][]string {
	out := make(map[string][]string, len(form))
	for key, values := range form {
		name := strings.TrimSuffix(key, "[]")
		out[name] = append(out[name], values...)
	}
	return out
}

func wantsFragment(r *http.Request) bool {
	return r.URL.Query().Get("fragment") == "1" || strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

func write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeProblem(w http.ResponseWriter, status int, p problem) {
	body, err := json.Marshal(p)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	write(w, status, "application/json", body)
}
