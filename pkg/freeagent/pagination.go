package freeagent

import (
	"context"
	"net/url"
	"strconv"
)

// PageMax is the largest per_page value the FreeAgent API accepts.
const PageMax = 100

// PageOptions controls paginated listing.
type PageOptions struct {
	// Page is the first page to fetch (1-based; 0 means 1).
	Page int
	// PerPage is the page size, capped at PageMax (0 means PageMax).
	PerPage int
	// MaxPages stops iteration once this page number has been fetched
	// (0 means no cap).
	MaxPages int
}

// FetchAll fetches every page of a collection endpoint and returns the
// concatenated items. Iteration stops when a page comes back shorter
// than per_page, or when MaxPages is reached.
func (c *Client) FetchAll(ctx context.Context, path string, params url.Values, collectionKey string, opts PageOptions) ([]map[string]any, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 || perPage > PageMax {
		perPage = PageMax
	}

	pageParams := url.Values{}
	for key, values := range params {
		pageParams[key] = values
	}

	var items []map[string]any
	for {
		pageParams.Set("page", strconv.Itoa(page))
		pageParams.Set("per_page", strconv.Itoa(perPage))

		payload, err := c.Get(ctx, path, pageParams)
		if err != nil {
			return nil, err
		}

		pageItems := Collection(payload, collectionKey)
		items = append(items, pageItems...)

		if len(pageItems) < perPage {
			break
		}
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			break
		}
		page++
	}

	return items, nil
}

// Collection extracts the named item list from a payload. Anything that
// is not a JSON object in the list is skipped.
func Collection(payload map[string]any, key string) []map[string]any {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}

	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}

// Document extracts a single named JSON object from a payload, e.g. the
// "invoice" wrapper of a GET /invoices/:id response.
func Document(payload map[string]any, key string) map[string]any {
	if doc, ok := payload[key].(map[string]any); ok {
		return doc
	}
	return map[string]any{}
}
