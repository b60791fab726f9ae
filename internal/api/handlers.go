package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

// now handles GET /v1/now?pattern=&offset=. The text and the instant come
// from one clock sample.
func (h *Handler) now(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	p, err := domain.ResolvePattern(q.Get("pattern"))
	if err != nil {
		return err
	}
	// An unescaped '+' in a query string arrives as a space.
	offset, err := domain.ResolveOffset(strings.Replace(q.Get("offset"), " ", "+", 1))
	if err != nil {
		return err
	}

	res, err := domain.Now(h.facade, p, offset)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, res)
	return nil
}

// format handles POST /v1/format.
func (h *Handler) format(w http.ResponseWriter, r *http.Request) error {
	var req protocol.FormatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v, err := domain.Decode(req.Value)
	if err != nil {
		return err
	}
	p, err := domain.ResolvePattern(req.Pattern)
	if err != nil {
		return err
	}
	offset, err := domain.ResolveOffset(req.Offset)
	if err != nil {
		return err
	}

	text, err := domain.Render(h.facade, p, v, offset)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, protocol.FormatResponse{Text: text})
	return nil
}

// parse handles POST /v1/parse.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) error {
	var req protocol.ParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	p, err := domain.ResolvePattern(req.Pattern)
	if err != nil {
		return err
	}
	v, err := domain.Parse(h.facade, domain.Representation(req.Kind), p, req.Text)
	if err != nil {
		return err
	}

	out, err := domain.Encode(v)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, protocol.ParseResponse{Value: out})
	return nil
}

// convert handles POST /v1/convert.
func (h *Handler) convert(w http.ResponseWriter, r *http.Request) error {
	var req protocol.ConvertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v, err := domain.Decode(req.Value)
	if err != nil {
		return err
	}
	converted, err := domain.Convert(h.facade, v, domain.Representation(req.To))
	if err != nil {
		return err
	}
	out, err := domain.Encode(converted)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, protocol.ConvertResponse{Value: out})
	return nil
}

// compare handles POST /v1/compare.
func (h *Handler) compare(w http.ResponseWriter, r *http.Request) error {
	var req protocol.CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if len(req.Values) > domain.MaxCompareValues {
		return fmt.Errorf("%w: at most %d values", domain.ErrInvalidInput, domain.MaxCompareValues)
	}

	values := make([]timepal.Temporal, len(req.Values))
	for i, raw := range req.Values {
		v, err := domain.Decode(raw)
		if err != nil {
			return fmt.Errorf("values[%d]: %w", i, err)
		}
		values[i] = v
	}

	res, err := domain.Order(h.facade, values)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, protocol.CompareResponse{
		Result: res.Result,
		Order:  res.Order,
		Future: res.Future,
		Past:   res.Past,
	})
	return nil
}
