package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateReportReady notifies a recipient that their experiment
	// report PDF has been generated.
	TemplateReportReady Template = "report_ready"
)

// templateSources holds the inline HTML for each template.
var templateSources = map[Template]string{
	TemplateReportReady: `<!DOCTYPE html>
<html>
  <body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #1a1a2e;">
    <h2>Your experiment report is ready</h2>
    <p>The report for experiment <strong>{{.ExperimentID}}</strong> has been generated.</p>
    <p>
      <a href="{{.PDFURL}}">Download the PDF</a><br>
      <a href="{{.ReportPageURL}}">View it online</a>
    </p>
    <p style="color: #6b7280; font-size: 13px;">Report id: {{.ReportID}}</p>
  </body>
</html>`,
}
