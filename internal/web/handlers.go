package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/pkg/cache"
	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/drop"
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
	"github.com/pagecraft/pagecraft/pkg/layer/mutate"
	"github.com/pagecraft/pagecraft/pkg/observability"
	"github.com/pagecraft/pagecraft/pkg/session"
	"github.com/pagecraft/pagecraft/pkg/store"
)

// ---- auth ----

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		User string `json:"user"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateName(req.User); err != nil {
		writeError(w, err)
		return
	}

	sess, err := session.New(req.User, session.DefaultTTL)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"user": sess.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		_ = s.sessions.Delete(r.Context(), c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// ---- documents ----

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list documents"))
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateName(req.Name); err != nil {
		writeError(w, err)
		return
	}

	d := document.New(req.Name)
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	var d document.Document
	if err := decodeBody(r, &d); err != nil {
		writeError(w, err)
		return
	}
	d.ID = id
	if err := d.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), &d); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, &d)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	err := s.store.Delete(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete document"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePublish serializes the document payload, serving it from the
// content-hash cache when the document is unchanged.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := document.WriteJSON(d, &buf); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize document"))
		return
	}
	payload := buf.Bytes()

	key := cache.Key(d.ID, payload)
	if cached, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(cached)
		return
	}
	_ = s.cache.Set(r.Context(), key, payload, s.cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// ---- structural mutations ----

// mutateDocument runs fn against the routed document's layers and
// stores the result when the tree changed.
func (s *Server) mutateDocument(w http.ResponseWriter, r *http.Request, op string, fn func(d *document.Document) ([]*layer.Layer, error)) {
	start := time.Now()
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tree, err := fn(d)
	recordMutation(r.Context(), op, layer.Count(tree), start, err)
	if err != nil {
		writeError(w, err)
		return
	}

	d.Layers = tree
	if err := s.store.Put(r.Context(), d); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LayerID  string `json:"layer_id"`
		ParentID string `json:"parent_id"`
		Index    int    `json:"index"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mutateDocument(w, r, "move", func(d *document.Document) ([]*layer.Layer, error) {
		return mutate.Move(d.Layers, req.LayerID, req.ParentID, req.Index)
	})
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LayerIDs []string `json:"layer_ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mutateDocument(w, r, "duplicate", func(d *document.Document) ([]*layer.Layer, error) {
		return mutate.DuplicateMany(d.Layers, req.LayerIDs)
	})
}

func (s *Server) handleDeleteLayers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LayerIDs []string `json:"layer_ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mutateDocument(w, r, "delete", func(d *document.Document) ([]*layer.Layer, error) {
		return mutate.DeleteMany(d.Layers, req.LayerIDs), nil
	})
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetID string       `json:"target_id"`
		Position string       `json:"position"` // "after" or "inside"
		Subtree  *layer.Layer `json:"subtree"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Subtree == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing subtree"))
		return
	}
	s.mutateDocument(w, r, "paste", func(d *document.Document) ([]*layer.Layer, error) {
		if req.Position == "inside" {
			return mutate.PasteInside(d.Layers, req.TargetID, req.Subtree)
		}
		return mutate.PasteAfter(d.Layers, req.TargetID, req.Subtree)
	})
}

func (s *Server) handleValidateDrop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetID    string        `json:"target_id"`
		Position    drop.Position `json:"position"`
		DraggedKind layer.Kind    `json:"dragged_kind"`
		DraggedID   string        `json:"dragged_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result := drop.Validate(d.Layers, req.TargetID, req.Position, req.DraggedKind, req.DraggedID)
	observability.Mutation().OnDropValidation(r.Context(), result.Valid, result.Reason)
	writeJSON(w, http.StatusOK, result)
}

// ---- components ----

func (s *Server) handlePromoteComponent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LayerID string `json:"layer_id"`
		Name    string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	next, c, err := document.PromoteToComponent(d, req.LayerID, req.Name)
	recordMutation(r.Context(), "promote-component", layer.Count(next.Layers), start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": next, "component": c})
}

func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "componentID")
	var req struct {
		Layers []*layer.Layer `json:"layers"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := document.UpdateComponentMaster(d, componentID, req.Layers)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "componentID")
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := document.DeleteComponent(d, componentID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// ---- styles ----

func (s *Server) handlePromoteStyle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LayerID string `json:"layer_id"`
		Name    string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, st, err := document.PromoteToStyle(d, req.LayerID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": next, "style": st})
}

func (s *Server) handleUpdateStyle(w http.ResponseWriter, r *http.Request) {
	styleID := chi.URLParam(r, "styleID")
	var req struct {
		Classes []string       `json:"classes"`
		Design  map[string]any `json:"design"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := document.UpdateStyle(d, styleID, req.Classes, req.Design)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleDeleteStyle(w http.ResponseWriter, r *http.Request) {
	styleID := chi.URLParam(r, "styleID")
	d, err := s.loadDocument(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := document.DeleteStyle(d, styleID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), next); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store document"))
		return
	}
	writeJSON(w, http.StatusOK, next)
}
