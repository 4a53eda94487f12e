// Package prober issues plain HTTP requests against signed blob URLs.
package prober

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type restyProber struct {
	client *resty.Client
	logger logger.Logger
}

// NewRestyProber creates a BlobProber backed by a shared resty client
func NewRestyProber(logger logger.Logger) blobs.BlobProber {
	return &restyProber{
		client: resty.New(),
		logger: logger,
	}
}

// Head issues a HEAD request bounded by timeout
func (p *restyProber) Head(ctx context.Context, url string, timeout time.Duration) (*blobs.ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return nil, fmt.Errorf("HEAD %s: %w", redact(url), err)
	}

	return &blobs.ProbeResult{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
	}, nil
}

// Get downloads url bounded by timeout. Non-2xx responses are not errors.
func (p *restyProber) Get(ctx context.Context, url string, timeout time.Duration) (*blobs.ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", redact(url), err)
	}

	p.logger.Info("Probed blob URL", "url", redact(url), "status", resp.StatusCode(), "size", len(resp.Body()))

	return &blobs.ProbeResult{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Header:     resp.Header(),
	}, nil
}

// redact drops the SAS token from url before it is logged
func redact(url string) string {
	if base := bloburl.StripQuery(url); base != url {
		return base + "?<sas>"
	}
	return url
}
