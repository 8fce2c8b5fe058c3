package diagnosis

import (
	"fmt"
	"strconv"
)

// Presentation helpers shared by the prompt builder and the report
// renderer. Absence (nil pointer / empty enum) formats as "N/A"; a
// measured zero is a real value and is printed as such.

func formatCount(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func formatPercent(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *p*100)
}

func formatCurrency(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("R$ %.2f", *p)
}

func formatCommHours(v ManualCommHours) string {
	if v == "" {
		return "N/A"
	}
	return string(v)
}

func formatOffHoursResponse(v OffHoursResponse) string {
	switch v {
	case OffHoursManualNextDay:
		return "Respondido manualmente no dia seguinte (risco de lead esfriar)"
	case OffHoursAutomated:
		return "Resposta automática configurada"
	case OffHoursNone:
		return "Nenhum processo definido (risco alto de perder lead)"
	default:
		return "N/A"
	}
}

func formatReviewProcess(v ProcessStatus) string {
	switch v {
	case ProcessManualInconsistent:
		return "Solicitado manualmente e de forma inconsistente"
	case ProcessAutomated:
		return "Processo automático existente"
	case ProcessInactive:
		return "Não solicita ativamente (oportunidade de crescimento perdida)"
	default:
		return "N/A"
	}
}

func formatReengagementProcess(v ProcessStatus) string {
	switch v {
	case ProcessManualInconsistent:
		return "Contato manual e inconsistente com ex-clientes"
	case ProcessAutomated:
		return "Processo automático para reativar clientes"
	case ProcessInactive:
		return "Nenhuma ação para reengajar clientes antigos (receita recorrente perdida)"
	default:
		return "N/A"
	}
}

func formatMemberEngagement(v EngagementProcess) string {
	switch v {
	case EngagementManualInconsistent:
		return "Comunicação manual e esporádica para engajar alunos"
	case EngagementBasicAutomation:
		return "Usa automação básica (e-mail/grupos), mas sem inteligência"
	case EngagementInactive:
		return "Nenhuma ação proativa para engajar membros atuais (risco de churn)"
	default:
		return "N/A"
	}
}

func formatRepetitiveQuestions(v RepetitiveQuestions) string {
	switch v {
	case RepetitiveConstant:
		return "Alto. A equipe gasta horas respondendo às mesmas perguntas."
	case RepetitiveSometimes:
		return "Médio. Ocorrências diárias, mas gerenciáveis."
	case RepetitiveRarely:
		return "Baixo. As perguntas dos clientes são geralmente únicas."
	default:
		return "N/A"
	}
}

func formatLocalOrderProcess(v OrderProcess) string {
	switch v {
	case OrderManualChaotic:
		return "Manual e caótico, com alto risco de erros e perda de vendas."
	case OrderManualOrganized:
		return "Manual, mas organizado. Funcional, porém consome tempo."
	case OrderNone:
		return "Não aplicável. O negócio não trabalha com encomendas."
	default:
		return "N/A"
	}
}

func formatPromotionComms(v PromotionComms) string {
	switch v {
	case PromotionManualBroadcast:
		return "Manual, via listas/grupos. Baixo alcance e personalização."
	case PromotionSocialMediaOnly:
		return "Passivo, depende do alcance orgânico das redes sociais."
	case PromotionInactive:
		return "Inexistente. Oportunidade crítica de recompra perdida."
	default:
		return "N/A"
	}
}
