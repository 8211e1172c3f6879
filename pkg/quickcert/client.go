// Package quickcert is a Go client for the Clinic QuickCert REST API.
package quickcert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quickcert/quickcert-api/internal/certdata"
	"github.com/quickcert/quickcert-api/internal/certdoc"
	"github.com/quickcert/quickcert-api/internal/models"
)

// APIError is a non-2xx response from the server. Detail carries the
// server's message verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the QuickCert API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreatePatient registers a new patient
func (c *Client) CreatePatient(ctx context.Context, req *models.PatientRequest) (*models.Patient, error) {
	var patient models.Patient
	if err := c.do(ctx, "POST", "/patients", nil, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// Patient retrieves a patient with visits and certificates embedded
func (c *Client) Patient(ctx context.Context, id uint) (*models.PatientWithVisits, error) {
	var patient models.PatientWithVisits
	if err := c.do(ctx, "GET", fmt.Sprintf("/patients/%d", id), nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// SearchPatients lists patients matching a name or phone substring
func (c *Client) SearchPatients(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var patients []models.Patient
	if err := c.do(ctx, "GET", "/patients", params, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// DeletePatient removes a patient. The server replies 204 with no body.
func (c *Client) DeletePatient(ctx context.Context, id uint) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/patients/%d", id), nil, nil, nil)
}

// CreateVisit records a visit for a patient
func (c *Client) CreateVisit(ctx context.Context, patientID uint, req *models.VisitRequest) (*models.Visit, error) {
	var visit models.Visit
	if err := c.do(ctx, "POST", fmt.Sprintf("/patients/%d/visits", patientID), nil, req, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

// SubmitCertificate encodes a canonical payload and creates a certificate
// for a visit. The optional idempotency key makes retries safe: the server
// replays the original record for a key it has already seen.
func (c *Client) SubmitCertificate(ctx context.Context, visitID uint, payload certdata.Payload, idemKey *uuid.UUID) (*models.Certificate, error) {
	encoded, err := certdata.Encode(payload)
	if err != nil {
		return nil, err
	}

	req := models.CertificateRequest{
		CertType: string(payload.CertType()),
		CertData: encoded,
	}

	var headers http.Header
	if idemKey != nil {
		headers = http.Header{"X-Idempotency-Key": []string{idemKey.String()}}
	}

	var cert models.Certificate
	if err := c.doWithHeaders(ctx, "POST", fmt.Sprintf("/visits/%d/certificates", visitID), nil, req, &cert, headers); err != nil {
		return nil, err
	}
	return &cert, nil
}

// Certificate retrieves a certificate with its patient and visit embedded
func (c *Client) Certificate(ctx context.Context, id uint) (*models.CertificateDetail, error) {
	var detail models.CertificateDetail
	if err := c.do(ctx, "GET", fmt.Sprintf("/certificates/%d", id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RecentCertificates lists the most recently issued certificates
func (c *Client) RecentCertificates(ctx context.Context, limit int) ([]models.Certificate, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var certs []models.Certificate
	if err := c.do(ctx, "GET", "/certificates", params, nil, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

// Document retrieves the rendered document tree for a certificate
func (c *Client) Document(ctx context.Context, id uint) (*certdoc.Document, error) {
	var doc certdoc.Document
	if err := c.do(ctx, "GET", fmt.Sprintf("/certificates/%d/document", id), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DownloadPDF retrieves the exported PDF bytes for a certificate
func (c *Client) DownloadPDF(ctx context.Context, id uint) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/certificates/%d/pdf", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	return c.doWithHeaders(ctx, method, path, params, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, params url.Values, body, out interface{}, headers http.Header) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL = reqURL + "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	// 204 carries no body
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError surfaces the server's detail message verbatim
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	} else {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
