// Package report renders a completed diagnosis as a downloadable PDF:
// a markdown builder mirrors the results screen, and a headless-chromium
// renderer turns it into print-ready A4 pages.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauromattos-lab/NexusLab/internal/diagnosis"
)

// BuildMarkdown assembles the report body for one diagnosis. Every
// section reads only completed fields, so a result that went through the
// completer can never produce a broken report.
func BuildMarkdown(p diagnosis.BusinessProfile, result diagnosis.DiagnosisResult) string {
	var b strings.Builder

	b.WriteString("# Diagnóstico de Transformação com IA\n\n")
	if company := strings.TrimSpace(p.CompanyName); company != "" {
		fmt.Fprintf(&b, "- Empresa: %s\n", company)
	}
	if name := strings.TrimSpace(p.UserName); name != "" {
		fmt.Fprintf(&b, "- Contato: %s\n", name)
	}
	fmt.Fprintf(&b, "- Data: %s\n\n", time.Now().Format("02/01/2006"))

	fmt.Fprintf(&b, "## Potencial de Transformação: %d/100\n\n", result.PotentialTransformationScore)
	fmt.Fprintf(&b, "%s\n\n", result.ExecutiveSummary)

	b.WriteString("## Indicadores\n\n")
	fmt.Fprintf(&b, "- Economia Potencial: %s\n", result.PotentialEconomy)
	fmt.Fprintf(&b, "- Tempo Recuperado: %s\n", result.TimeRecovered)
	fmt.Fprintf(&b, "- Ganho de Produtividade: %s\n", result.ProductivityGain)
	fmt.Fprintf(&b, "- Prazo de Implementação: %s\n\n", result.ImplementationTimeframe)

	// The bottleneck is quoted verbatim, except for the sentinel the form
	// stores when the visitor skipped the question.
	if bottleneck := strings.TrimSpace(p.MainBottleneck); bottleneck != "" && bottleneck != diagnosis.MainBottleneckSkip {
		b.WriteString("## Principal Gargalo Relatado\n\n")
		fmt.Fprintf(&b, "%s\n\n", bottleneck)
	}

	b.WriteString("## Soluções Recomendadas\n\n")
	for i, s := range result.Solutions {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, s.Title)
		fmt.Fprintf(&b, "%s\n\n", s.Description)
		fmt.Fprintf(&b, "- Impacto: %s\n", s.Impact)
		fmt.Fprintf(&b, "- Tempo de Implementação: %s\n", s.ImplementationTime)
		fmt.Fprintf(&b, "- ROI Esperado: %s\n\n", s.ExpectedROI)
		b.WriteString("Benefícios:\n\n")
		for _, benefit := range s.Benefits {
			fmt.Fprintf(&b, "- %s\n", benefit)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n\n", s.DetailedExplanation)
	}

	return b.String()
}
