package diagnosis

import (
	"fmt"
	"strings"
)

// SystemInstruction is sent as the chat-completion system message; the
// user message is the BuildPrompt output.
const SystemInstruction = "Você é um analista de negócios de IA. Responda APENAS em JSON válido no schema fornecido."

// resultSchema is embedded verbatim in every prompt. Field names,
// required lists and the impact enum must stay byte-identical to what
// the completer expects on the way back.
const resultSchema = `{
  "type": "object",
  "properties": {
    "potentialTransformationScore": { "type": "number" },
    "potentialEconomy": { "type": "string" },
    "timeRecovered": { "type": "string" },
    "productivityGain": { "type": "string" },
    "implementationTimeframe": { "type": "string" },
    "executiveSummary": { "type": "string" },
    "solutions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": { "type": "string" },
          "description": { "type": "string" },
          "impact": { "type": "string", "enum": ["Alto","Médio","Baixo"] },
          "implementationTime": { "type": "string" },
          "expectedROI": { "type": "string" },
          "benefits": { "type": "array", "items": { "type": "string" } },
          "detailedExplanation": { "type": "string" }
        },
        "required": ["title","description","impact","implementationTime","expectedROI","benefits","detailedExplanation"]
      }
    }
  },
  "required": ["potentialTransformationScore","potentialEconomy","timeRecovered","productivityGain","implementationTimeframe","executiveSummary","solutions"]
}`

func nonEmpty(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}

// businessSpecifics renders the KPI block for the active business type,
// including the derived monthly-loss figure the model is asked to reason
// about. Every KPI the profile carries must appear here: the model
// cannot infer a number it was never told.
func businessSpecifics(p BusinessProfile) string {
	var b strings.Builder
	switch p.BusinessType {
	case BusinessAppointmentServices:
		noShowLoss := num(p.MonthlyAppointments) * num(p.NoShowRate) * num(p.TicketPrice)
		fmt.Fprintf(&b, "- Modelo: Serviços com Agendamento\n")
		fmt.Fprintf(&b, "- Volume de Agendamentos/mês: %s\n", formatCount(p.MonthlyAppointments))
		fmt.Fprintf(&b, "- Taxa de No-Show: %s\n", formatPercent(p.NoShowRate))
		fmt.Fprintf(&b, "- Ticket Médio: %s\n", formatCurrency(p.TicketPrice))
		fmt.Fprintf(&b, "- Prejuízo Mensal com No-Show: R$ %.2f\n", noShowLoss)
	case BusinessQuoteServices:
		lostRevenue := num(p.MonthlyQuotes) * (1 - num(p.QuoteConversionRate)) * num(p.AvgDealValue)
		fmt.Fprintf(&b, "- Modelo: Serviços por Orçamento\n")
		fmt.Fprintf(&b, "- Orçamentos/mês: %s\n", formatCount(p.MonthlyQuotes))
		fmt.Fprintf(&b, "- Taxa de Conversão: %s\n", formatPercent(p.QuoteConversionRate))
		fmt.Fprintf(&b, "- Valor Médio: %s\n", formatCurrency(p.AvgDealValue))
		fmt.Fprintf(&b, "- Receita Potencial Perdida: R$ %.2f/mês\n", lostRevenue)
	case BusinessRecurringServices:
		churnLoss := num(p.ActiveSubscribers) * num(p.MonthlyChurnRate) * num(p.AvgSubscriptionFee)
		fmt.Fprintf(&b, "- Modelo: Serviços Recorrentes\n")
		fmt.Fprintf(&b, "- Assinantes: %s\n", formatCount(p.ActiveSubscribers))
		fmt.Fprintf(&b, "- Churn Mensal: %s\n", formatPercent(p.MonthlyChurnRate))
		fmt.Fprintf(&b, "- Mensalidade Média: %s\n", formatCurrency(p.AvgSubscriptionFee))
		fmt.Fprintf(&b, "- Prejuízo Mensal com Churn: R$ %.2f\n", churnLoss)
		fmt.Fprintf(&b, "- Engajamento: %s\n", formatMemberEngagement(p.MemberEngagementProcess))
	case BusinessProducts:
		// 4.33 weeks per month on average.
		monthlyLostRevenue := num(p.WeeklyLostSalesLocal) * num(p.AvgOrderValueLocal) * 4.33
		fmt.Fprintf(&b, "- Modelo: Venda de Produtos (Negócio Local)\n")
		fmt.Fprintf(&b, "- Ticket Médio: %s\n", formatCurrency(p.AvgOrderValueLocal))
		fmt.Fprintf(&b, "- Vendas perdidas/semana: %s\n", formatCount(p.WeeklyLostSalesLocal))
		fmt.Fprintf(&b, "- Prejuízo Mensal Atendimento: R$ %.2f\n", monthlyLostRevenue)
		fmt.Fprintf(&b, "- Perguntas Repetitivas: %s\n", formatRepetitiveQuestions(p.RepetitiveQuestionsLocal))
		fmt.Fprintf(&b, "- Encomendas/Retirada: %s\n", formatLocalOrderProcess(p.LocalOrderProcess))
		fmt.Fprintf(&b, "- Promoções/Novidades: %s\n", formatPromotionComms(p.PromotionCommunication))
	}
	return b.String()
}

// BuildPrompt assembles the single user message sent to the model:
// persona, scoring rule anchored on the deterministic baseline,
// completeness requirements, the response schema, and a human-readable
// dump of every KPI collected for this business.
func BuildPrompt(p BusinessProfile, anchor ScoreAnchor) string {
	var b strings.Builder

	b.WriteString("Você é o NEXUS, um super-analista de negócios de IA. Gere um diagnóstico estratégico em JSON ESTRITO no schema abaixo, baseado nos dados.\n\n")

	fmt.Fprintf(&b, "REGRA PARA PONTUAÇÃO:\n")
	fmt.Fprintf(&b, "- baselineScore=%d\n", anchor.Baseline)
	fmt.Fprintf(&b, "- allowedVariance=±%d\n", anchor.AllowedVariance)
	b.WriteString("- Calcule potentialTransformationScore em torno do baselineScore com a variação máxima definida por allowedVariance, mantendo o intervalo [0,100]. Aumente mais quando houver muitos gargalos severos; reduza quando os riscos forem mínimos.\n\n")

	b.WriteString("REQUISITOS DE COMPLETUDE:\n")
	b.WriteString("- Todos os campos devem vir PREENCHIDOS (sem strings vazias).\n")
	b.WriteString("- Gere de 3 a 4 soluções completas. Cada solução deve conter title, description, impact, implementationTime, expectedROI, benefits (3+ itens) e detailedExplanation.\n")
	b.WriteString("- Ajuste os textos para serem claros e prontos para um relatório PDF profissional.\n\n")

	b.WriteString("Schema:\n")
	b.WriteString(resultSchema)
	b.WriteString("\n\n")

	b.WriteString("Dados do negócio:\n")
	fmt.Fprintf(&b, "- Nome do Contato: %s\n", nonEmpty(p.UserName, "N/A"))
	fmt.Fprintf(&b, "- Nome da Empresa: %s\n", nonEmpty(p.CompanyName, "N/A"))
	fmt.Fprintf(&b, "- E-mail: %s\n", nonEmpty(p.Email, "N/A"))
	fmt.Fprintf(&b, "- baselineScore: %d\n", anchor.Baseline)
	fmt.Fprintf(&b, "- allowedVariance: %d\n\n", anchor.AllowedVariance)

	b.WriteString("Específicos:\n")
	b.WriteString(businessSpecifics(p))
	b.WriteString("\n")

	b.WriteString("Comuns:\n")
	fmt.Fprintf(&b, "- Horas em comunicação manual/dia: %s\n", formatCommHours(p.ManualCommHours))
	fmt.Fprintf(&b, "- Resposta fora do horário: %s\n", formatOffHoursResponse(p.OffHoursResponse))
	fmt.Fprintf(&b, "- Solicitação de avaliações: %s\n", formatReviewProcess(p.ReviewRequestProcess))
	fmt.Fprintf(&b, "- Reengajamento de clientes antigos: %s\n\n", formatReengagementProcess(p.ClientReengagementProcess))

	b.WriteString("Responda APENAS com JSON válido conforme o schema, sem texto extra.\n")
	return b.String()
}
