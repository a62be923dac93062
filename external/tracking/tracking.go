package tracking

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-chart/schema"
)

const logPrefix = "tracking"

var (
	ErrEmptyResponse = fmt.Errorf("empty response")
)

// Source - interface to get the daily records of a region
type Source interface {
	Daily(ctx context.Context, url string) ([]schema.DailyRecord, error)
}

type covidTracking struct {
	client *http.Client
}

func (c covidTracking) Daily(ctx context.Context, url string) ([]schema.DailyRecord, error) {
	data, err := c.get(ctx, url)
	if nil != err {
		return nil, err
	}

	records, err := Parse(bytes.NewReader(data))
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
			"error":  err,
		}).Error("parse daily csv")
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"url":     url,
		"records": len(records),
	}).Debug("daily records")

	return records, nil
}

func (c covidTracking) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
			"error":  err,
		}).Error("get daily csv")
		return nil, err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("read daily csv response")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
			"status": resp.StatusCode,
		}).Error("get daily csv")
		return nil, fmt.Errorf("get %s: unexpected status code: %s", url, resp.Status)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
		}).Error("empty daily csv")
		return nil, fmt.Errorf("get %s: %w", url, ErrEmptyResponse)
	}

	return data, nil
}

// New - new covidtracking.com daily feed client. A nil client uses
// http.DefaultClient, which never times out.
func New(client *http.Client) Source {
	if client == nil {
		client = http.DefaultClient
	}

	return &covidTracking{
		client: client,
	}
}
