// Package poetrydb is implementation of poetry fetcher interface on top of https://poetrydb.org.
package poetrydb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/poeit/seedgen/internal/poetry"
)

// DefaultURL is the public PoetryDB endpoint.
const DefaultURL = "https://poetrydb.org"

var log = logrus.WithField("package", "poetrydb")

var errTemporary = errors.New("temporary failure")

type poem struct {
	Lines []string `json:"lines"`
}

// notFound is returned by PoetryDB instead of an empty array.
type notFound struct {
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

type client struct {
	url           string
	c             *http.Client
	retries       int
	retryInterval time.Duration
}

// New returns new instance of poetrydb fetcher.
func New(url string, timeout time.Duration, retries int, retryInterval time.Duration) poetry.Fetcher {
	return client{
		url:           strings.TrimRight(url, "/"),
		c:             &http.Client{Timeout: timeout},
		retries:       retries,
		retryInterval: retryInterval,
	}
}

func (c client) FetchPoems(ctx context.Context, count, lines int) ([]string, error) {
	u := fmt.Sprintf("%s/poemcount,linecount/%d;%d/lines", c.url, count, lines)

	var (
		poems []string
		err   error
	)

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.WithError(err).WithField("attempt", attempt).Warn("failed to fetch poems, retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryInterval):
			}
		}

		poems, err = c.fetch(ctx, u)
		if err == nil || !errors.Is(err, errTemporary) {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %d poems with %d lines: %w", count, lines, err)
	}

	return poems, nil
}

func (c client) fetch(ctx context.Context, u string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.c.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s", errTemporary, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", errTemporary, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", poetry.ErrUnexpectedResponse, resp.StatusCode)
	}

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %s", errTemporary, err)
	}

	return decode(b)
}

func decode(b []byte) ([]string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty body", poetry.ErrUnexpectedResponse)
	}

	switch b[0] {
	case '[':
		var poems []poem
		if err := json.Unmarshal(b, &poems); err != nil {
			return nil, fmt.Errorf("%w: %s", poetry.ErrUnexpectedResponse, err)
		}

		out := make([]string, 0, len(poems))
		for _, v := range poems {
			out = append(out, strings.Join(v.Lines, "\n"))
		}

		return out, nil
	case '{':
		var nf notFound
		if err := json.Unmarshal(b, &nf); err != nil {
			return nil, fmt.Errorf("%w: %s", poetry.ErrUnexpectedResponse, err)
		}

		if nf.Status == http.StatusNotFound {
			log.WithField("reason", nf.Reason).Debug("no poems found")
			return nil, nil
		}

		return nil, fmt.Errorf("%w: status=%d reason=%s", poetry.ErrUnexpectedResponse, nf.Status, nf.Reason)
	default:
		return nil, fmt.Errorf("%w: not a json document", poetry.ErrUnexpectedResponse)
	}
}
