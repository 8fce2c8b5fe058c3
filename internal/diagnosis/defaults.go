package diagnosis

import "fmt"

// Every fallback the completer may substitute lives in this one table so
// the behavior for incomplete model output is reviewable in one place.
// Keys of ResultDefaults match the DiagnosisResult JSON field names.
var ResultDefaults = map[string]string{
	"potentialEconomy":        "R$ 15.000/mês",
	"timeRecovered":           "10 horas/semana",
	"productivityGain":        "30%",
	"implementationTimeframe": "6–10 semanas",
}

var SolutionDefaults = Solution{
	Title:              "Assistente de IA para Atendimento 24/7",
	Description:        "Uma IA que atende clientes 24/7, qualifica leads e reduz perdas por demora de resposta.",
	Impact:             ImpactAlto,
	ImplementationTime: "3–6 semanas",
	ExpectedROI:        "Aumento de 15–30% na conversão e redução de 50–80% no tempo em perguntas repetitivas",
	Benefits: []string{
		"Atendimento 24/7, inclusive fora do horário",
		"Qualificação automática de leads",
		"Redução de tempo com perguntas repetitivas",
	},
	DetailedExplanation: "Implementação de um assistente de IA com PLN para responder dúvidas frequentes, qualificar leads e encaminhar agendamentos. Reduz perdas por demora e libera a equipe para atividades de maior valor.",
}

// defaultExecutiveSummary is user-facing, so it interpolates the company
// name when the visitor provided one.
func defaultExecutiveSummary(companyName string) string {
	name := nonEmpty(companyName, "seu negócio")
	return fmt.Sprintf("Nossa análise indica que %s possui alto potencial de transformação com IA. As principais oportunidades estão em reduzir esforço manual e aumentar conversões com atendimento 24/7 e automação inteligente.", name)
}
