package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CertificatesIssued counts created certificates by type
	CertificatesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickcert_certificates_issued_total",
		Help: "Number of certificates issued, by certificate type",
	}, []string{"cert_type"})

	// DocumentsRendered counts successful document renders
	DocumentsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickcert_documents_rendered_total",
		Help: "Number of certificate documents rendered",
	})

	// RenderFailures counts failed render attempts
	RenderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickcert_render_failures_total",
		Help: "Number of certificate renders that failed",
	})

	// PDFExports counts PDF exports, by cache outcome
	PDFExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickcert_pdf_exports_total",
		Help: "Number of PDF exports, by cache outcome",
	}, []string{"cache"})

	// ExportFailures counts failed PDF exports
	ExportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickcert_export_failures_total",
		Help: "Number of PDF exports that failed",
	})
)
