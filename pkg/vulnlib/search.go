package vulnlib

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/xerrors"
)

var requiredFields = []string{"cve", "severity", "score", "vector", "summary"}

// Search posts the query to the search endpoint. No match is an empty
// slice, not an error.
func (c *Client) Search(ctx context.Context, q Query) ([]*Vulnerability, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode query: %w", err)
	}

	url := c.URL + searchPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, xerrors.Errorf("%s: %v: %w", url, err, ErrUnavailable)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debugf("search %s vendor=%q product=%q version=%q", url, q.Vendor, q.Product, q.Version)

	res, err := c.Cli.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("failed to request url %s: %v: %w", url, err, ErrUnavailable)
	}

	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed to read response: %v: %w", err, ErrUnavailable)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, xerrors.Errorf("%s returned %s: %w", url, res.Status, ErrUnavailable)
	}

	return parseVulns(resBody)
}

func parseVulns(body []byte) ([]*Vulnerability, error) {
	if !gjson.ValidBytes(body) {
		return nil, xerrors.Errorf("invalid json response: %w", ErrUnavailable)
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, xerrors.Errorf("response is not an array: %w", ErrUnavailable)
	}

	vulns := []*Vulnerability{}
	for i, item := range result.Array() {
		if !item.IsObject() {
			return nil, xerrors.Errorf("record %d is not an object: %w", i, ErrUnavailable)
		}

		for _, field := range requiredFields {
			if !item.Get(field).Exists() {
				return nil, xerrors.Errorf("record %d lacks %q: %w", i, field, ErrUnavailable)
			}
		}

		score := item.Get("score")
		if score.Type != gjson.Number {
			return nil, xerrors.Errorf("record %d has a non numeric score: %w", i, ErrUnavailable)
		}

		vulns = append(vulns, &Vulnerability{
			CVE:      item.Get("cve").String(),
			Severity: item.Get("severity").String(),
			Score:    score.Float(),
			Vector:   item.Get("vector").String(),
			Summary:  item.Get("summary").String(),
		})
	}

	return vulns, nil
}
