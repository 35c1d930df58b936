package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vertragsassistent/internal/core"
)

// ViewParams holds the parsed query of the contract listing endpoint.
type ViewParams struct {
	Today    core.Date
	Selected []core.Tag
	Mode     core.TagMode
}

// ParseViewParams extracts the reference date, tag selection and combine mode
// from query parameters. Defaults: today, no selection, AND.
func ParseViewParams(query url.Values) (ViewParams, error) {
	params := ViewParams{
		Today: core.DateOf(time.Now()),
		Mode:  core.TagModeAnd,
	}

	if v := strings.TrimSpace(query.Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return ViewParams{}, fmt.Errorf("invalid date %q", v)
		}
		params.Today = d
	}

	if v := strings.TrimSpace(query.Get("mode")); v != "" {
		mode := core.TagMode(v)
		if err := mode.Validate(); err != nil {
			return ViewParams{}, err
		}
		params.Mode = mode
	}

	if v := strings.TrimSpace(query.Get("tags")); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return ViewParams{}, fmt.Errorf("invalid tag id %q", part)
			}
			params.Selected = append(params.Selected, core.Tag{ID: id})
		}
	}

	return params, nil
}

// ContractRequest is the JSON body of contract create/update. The pricing
// history always travels with the contract and replaces the stored history
// on save.
type ContractRequest struct {
	Name     string           `json:"name"`
	Company  string           `json:"company"`
	Notes    string           `json:"notes"`
	Reminder string           `json:"reminder"`
	Pricing  []PricingRequest `json:"pricing"`
}

type PricingRequest struct {
	Start               string `json:"start"`
	End                 string `json:"end"`
	PaymentIntervalDays int    `json:"payment_interval_days"`
	Price               string `json:"price"`
}

// ToDomain converts the request into a contract plus its pricing history.
func (req ContractRequest) ToDomain(id int64) (core.Contract, []core.PricingPeriod, error) {
	c := core.Contract{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Company: strings.TrimSpace(req.Company),
		Notes:   strings.TrimSpace(req.Notes),
	}
	if v := strings.TrimSpace(req.Reminder); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Contract{}, nil, fmt.Errorf("invalid reminder date %q", v)
		}
		c.Reminder = &d
	}

	periods := make([]core.PricingPeriod, 0, len(req.Pricing))
	for _, pr := range req.Pricing {
		p, err := pr.toDomain(id)
		if err != nil {
			return core.Contract{}, nil, err
		}
		periods = append(periods, p)
	}
	return c, periods, nil
}

func (req PricingRequest) toDomain(contractID int64) (core.PricingPeriod, error) {
	p := core.PricingPeriod{
		ContractID:          contractID,
		PaymentIntervalDays: req.PaymentIntervalDays,
	}

	start, err := core.ParseDate(req.Start)
	if err != nil {
		return core.PricingPeriod{}, fmt.Errorf("invalid start date %q", req.Start)
	}
	p.Start = start

	if v := strings.TrimSpace(req.End); v != "" {
		end, err := core.ParseDate(v)
		if err != nil {
			return core.PricingPeriod{}, fmt.Errorf("invalid end date %q", v)
		}
		p.End = &end
	}

	price, err := core.ParsePrice(req.Price)
	if err != nil {
		return core.PricingPeriod{}, fmt.Errorf("invalid price %q: %w", req.Price, core.ErrInvalidPrice)
	}
	p.Price = price

	return p, nil
}

// PricingHistoryRequest is the body of the standalone validation endpoint.
type PricingHistoryRequest struct {
	Pricing []PricingRequest `json:"pricing"`
}

func (req PricingHistoryRequest) ToDomain() ([]core.PricingPeriod, error) {
	periods := make([]core.PricingPeriod, 0, len(req.Pricing))
	for _, pr := range req.Pricing {
		p, err := pr.toDomain(0)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}

type TagRequest struct {
	Name string `json:"name"`
}

type DocumentRequest struct {
	File        string `json:"file"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (req DocumentRequest) ToDomain(id, contractID int64) (core.ContractDocument, error) {
	d := core.ContractDocument{
		ID:          id,
		ContractID:  contractID,
		File:        strings.TrimSpace(req.File),
		Description: strings.TrimSpace(req.Description),
	}
	if v := strings.TrimSpace(req.Date); v != "" {
		date, err := core.ParseDate(v)
		if err != nil {
			return core.ContractDocument{}, fmt.Errorf("invalid document date %q", v)
		}
		d.Date = date
	} else {
		d.Date = core.DateOf(time.Now())
	}
	return d, nil
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, 1<<20)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// pathID parses a numeric path segment.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
