package email

// SendReportReadyEmail notifies the recipient that their experiment
// report has been generated, with download and view links.
func (c *Client) SendReportReadyEmail(to, experimentID, reportID, pdfURL, reportPageURL string) error {
	data := map[string]string{
		"ExperimentID":  experimentID,
		"ReportID":      reportID,
		"PDFURL":        pdfURL,
		"ReportPageURL": reportPageURL,
	}

	return c.SendEmail(
		to,
		"Your experiment report is ready",
		TemplateReportReady,
		data,
	)
}
