package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrAssetServerUnavailable = errors.New("asset server is not reachable")

const defaultProbeTimeout = 3 * time.Second

// HTTPProbe checks that the asset server answers its health endpoint.
type HTTPProbe struct {
	URL    string
	client *resty.Client
}

func NewHTTPProbe(url string) *HTTPProbe {
	return &HTTPProbe{
		URL:    url,
		client: resty.New().SetTimeout(defaultProbeTimeout),
	}
}

func (p *HTTPProbe) Check(ctx context.Context) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(p.URL)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url": p.URL,
		}).WithError(err).Debugln("Asset server probe failed")
		return fmt.Errorf("%w: %v", ErrAssetServerUnavailable, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: %s returned %s", ErrAssetServerUnavailable, p.URL, resp.Status())
	}

	logrus.WithFields(logrus.Fields{
		"url":     p.URL,
		"latency": resp.Time().String(),
	}).Debugln("Asset server is reachable")

	return nil
}
