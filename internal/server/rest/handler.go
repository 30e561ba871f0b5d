package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const maxBodyBytes = 1 << 20

type AccountManager interface {
	List(ctx context.Context) ([]models.AccountSummary, error)
	Get(ctx context.Context, id string) (*models.AccountSummary, error)
	Create(ctx context.Context, in services.CreateAccountInput) (string, error)
	Update(ctx context.Context, in services.UpdateAccountInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

type NoteManager interface {
	List(ctx context.Context) ([]models.NoteView, error)
	Get(ctx context.Context, id string) (*models.NoteView, error)
	Create(ctx context.Context, in services.CreateNoteInput) (string, error)
	Update(ctx context.Context, in services.UpdateNoteInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

// accountRequest is the body of every /users mutation. Booleans are
// pointers so that an absent or mistyped value reaches the service as nil.
type accountRequest struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
}

type noteRequest struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Completed *bool  `json:"completed"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type handler struct {
	accounts AccountManager
	notes    NoteManager
	logger   logging.Logger
}

func (h *handler) handlePing(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := h.accounts.List(r.Context())
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, list)
}

func (h *handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, acc)
}

func (h *handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !h.decode(w, r, &req) {
		return
	}
	secret := []byte(req.Password)
	defer common.WipeByteArray(secret)

	msg, err := h.accounts.Create(r.Context(), services.CreateAccountInput{
		Username: req.Username,
		Secret:   secret,
		Roles:    validRoles(req.Roles),
	})
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, messageResponse{Message: msg})
}

func (h *handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !h.decode(w, r, &req) {
		return
	}
	secret := []byte(req.Password)
	defer common.WipeByteArray(secret)

	msg, err := h.accounts.Update(r.Context(), services.UpdateAccountInput{
		ID:       req.ID,
		Username: req.Username,
		Roles:    validRoles(req.Roles),
		Active:   req.Active,
		Secret:   secret,
	})
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !h.decode(w, r, &req) {
		return
	}
	msg, err := h.accounts.Delete(r.Context(), req.ID)
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.notes.List(r.Context())
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, list)
}

func (h *handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, note)
}

func (h *handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !h.decode(w, r, &req) {
		return
	}
	msg, err := h.notes.Create(r.Context(), services.CreateNoteInput{
		Owner: req.User,
		Title: req.Title,
		Body:  req.Text,
	})
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, messageResponse{Message: msg})
}

func (h *handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !h.decode(w, r, &req) {
		return
	}
	msg, err := h.notes.Update(r.Context(), services.UpdateNoteInput{
		ID:        req.ID,
		Owner:     req.User,
		Title:     req.Title,
		Body:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !h.decode(w, r, &req) {
		return
	}
	msg, err := h.notes.Delete(r.Context(), req.ID)
	if err != nil {
		h.err(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, messageResponse{Message: msg})
}

// decode reads a JSON body into v. Values of the wrong type are left at
// their zero value and the service reports the missing field; malformed JSON
// is rejected here. An empty body decodes to the zero request.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.Is(err, io.EOF) || errors.As(err, &typeErr) {
		return true
	}
	h.respond(w, http.StatusBadRequest, messageResponse{Message: "malformed request body"})
	return false
}

func (h *handler) err(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusOf(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "internal error", "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	h.respond(w, code, messageResponse{Message: msg})
}

func (h *handler) respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// validRoles drops the whole list when any entry is blank, which is what a
// mistyped element decodes to.
func validRoles(roles []string) []string {
	for _, r := range roles {
		if r == "" {
			return nil
		}
	}
	return roles
}
