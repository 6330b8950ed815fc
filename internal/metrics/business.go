package metrics

// IncrementReportCreated counts a filed error report
func (m *Metrics) IncrementReportCreated() {
	m.safeExecute("IncrementReportCreated", func() {
		m.ReportsCreatedTotal.Inc()
	})
}

// IncrementClassifyRequest counts a classification-assist request
func (m *Metrics) IncrementClassifyRequest(operation string) {
	m.safeExecute("IncrementClassifyRequest", func() {
		m.ClassifyRequestsTotal.WithLabelValues(operation).Inc()
	})
}

// IncrementClassifyFallback counts a suggestion served by the local fallback
func (m *Metrics) IncrementClassifyFallback(operation string) {
	m.safeExecute("IncrementClassifyFallback", func() {
		m.ClassifyFallbackTotal.WithLabelValues(operation).Inc()
	})
}
