/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package download fetches schema documents over HTTP.
package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/botobag/schemawatch/graphql"
)

// Response requirements
const (
	RequiredContentType = "text/plain"
	RequiredCharset     = "utf-8"
)

// DefaultMaxBodySize limits the size of a schema document.
const DefaultMaxBodySize = 64 << 20

// Reason tells which requirement a response failed.
type Reason uint8

// Enumeration of Reason
const (
	ReasonStatusCode Reason = iota + 1
	ReasonContentTypeMissing
	ReasonCharsetMissing
	ReasonCharsetInvalid
	ReasonContentTypeInvalid
	ReasonEmptyBody
	ReasonBodyTooLarge
)

// Error describes a response that cannot be used as a schema document.
type Error struct {
	Reason Reason

	// StatusCode of the response.
	StatusCode int

	// ContentType is the media type of the response in lower case, if any.
	ContentType string

	// Charset is the charset parameter of the content type in lower case, if any.
	Charset string
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	switch e.Reason {
	case ReasonStatusCode:
		return fmt.Sprintf("Server returned %d (expected 200)", e.StatusCode)
	case ReasonContentTypeMissing:
		return "Server returned response without content type header"
	case ReasonCharsetMissing:
		return "Server returned response with content type header missing charset"
	case ReasonCharsetInvalid:
		return fmt.Sprintf("Server returned response with unsupported charset '%s' (expected %s)",
			e.Charset, RequiredCharset)
	case ReasonContentTypeInvalid:
		return fmt.Sprintf("Server returned invalid content type '%s' (expected %s)",
			e.ContentType, RequiredContentType)
	case ReasonEmptyBody:
		return "Server returned empty response"
	case ReasonBodyTooLarge:
		return "Server returned response larger than the limit"
	}
	return "Server returned unusable response"
}

// Downloader fetches schema documents.
type Downloader struct {
	Client *http.Client

	// MaxBodySize is the largest body accepted. Zero means DefaultMaxBodySize.
	MaxBodySize int64
}

// New creates a Downloader whose requests time out after timeout.
func New(timeout time.Duration) *Downloader {
	return &Downloader{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Download fetches the schema document at url. The response must have status 200, a
// "text/plain; charset=utf-8" content type and a non-empty body. Otherwise the returned error is
// of kind graphql.ErrKindDownload and wraps an *Error.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	const op = graphql.Op("download.Download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", graphql.NewError("invalid schema URL "+url, op, graphql.ErrKindDownload, err)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", graphql.NewError("cannot download schema from "+url, op, graphql.ErrKindDownload, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return "", graphql.NewError("cannot download schema from "+url, op, graphql.ErrKindDownload, err)
	}

	maxBodySize := d.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", graphql.NewError("cannot read schema from "+url, op, graphql.ErrKindDownload, err)
	}

	var reason Reason
	if len(body) == 0 {
		reason = ReasonEmptyBody
	} else if int64(len(body)) > maxBodySize {
		reason = ReasonBodyTooLarge
	}
	if reason != 0 {
		return "", graphql.NewError("cannot download schema from "+url, op, graphql.ErrKindDownload, &Error{
			Reason:      reason,
			StatusCode:  resp.StatusCode,
			ContentType: RequiredContentType,
			Charset:     RequiredCharset,
		})
	}

	return string(body), nil
}

// checkResponse validates the status and the headers of resp.
func checkResponse(resp *http.Response) *Error {
	e := &Error{StatusCode: resp.StatusCode}

	if resp.StatusCode != http.StatusOK {
		e.Reason = ReasonStatusCode
		return e
	}

	header := resp.Header.Get("Content-Type")
	if len(header) == 0 {
		e.Reason = ReasonContentTypeMissing
		return e
	}

	mediaType, params, err := mime.ParseMediaType(strings.ToLower(header))
	if err != nil {
		e.Reason = ReasonContentTypeInvalid
		e.ContentType = strings.ToLower(strings.TrimSpace(header))
		return e
	}
	e.ContentType = mediaType

	charset, ok := params["charset"]
	if !ok {
		e.Reason = ReasonCharsetMissing
		return e
	}
	e.Charset = charset

	if mediaType != RequiredContentType {
		e.Reason = ReasonContentTypeInvalid
		return e
	}
	if charset != RequiredCharset {
		e.Reason = ReasonCharsetInvalid
		return e
	}

	return nil
}
