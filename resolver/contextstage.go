package resolver

import (
	"fmt"
	"strings"

	"github.com/aprenda-ai/tutor/schema"
)

// contextStage answers questions about the student's own record. Everything
// here is templated from the supplied StudentContext; there is no storage on
// this side.
func (r *Resolver) contextStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	switch in {
	case schema.IntentProgress:
		return schema.Answered(progressText(req.Context)), true
	case schema.IntentTasks:
		return schema.Answered(tasksText(req.Context)), true
	case schema.IntentWeeklyReport:
		return schema.Answered(weeklyReportText(req.Context)), true
	case schema.IntentStudyPlan:
		return schema.Answered(studyPlanText(req.Context)), true
	case schema.IntentMemorize:
		return schema.Answered(memorizeText()), true
	case schema.IntentMotivation:
		return schema.Answered(motivationText(req.Context)), true
	}
	return schema.Outcome{}, false
}

func progressText(sc schema.StudentContext) string {
	var b strings.Builder
	b.WriteString("Aqui vai um resumo do seu progresso:\n")
	fmt.Fprintf(&b, "- XP acumulado: %d\n", sc.XP)
	if sc.StreakDays > 0 {
		fmt.Fprintf(&b, "- Sequência de estudo: %d %s seguidos\n", sc.StreakDays, dayWord(sc.StreakDays))
	}
	fmt.Fprintf(&b, "- Anotações criadas: %d\n", sc.NotesCount)
	fmt.Fprintf(&b, "- Meta semanal: %d%% concluída\n", sc.GoalProgress)
	if sc.StrongSubject != "" {
		fmt.Fprintf(&b, "- Seu ponto forte: %s\n", sc.StrongSubject)
	}
	if len(sc.WeakSubjects) > 0 {
		fmt.Fprintf(&b, "- Vale reforçar: %s\n", strings.Join(sc.WeakSubjects, ", "))
	}
	b.WriteString("Continue assim, cada sessão conta!")
	return b.String()
}

func tasksText(sc schema.StudentContext) string {
	if sc.PendingTasks == 0 && len(sc.Reminders) == 0 {
		return "Você está em dia! Nenhuma tarefa pendente por aqui. Que tal revisar um conteúdo ou adiantar a próxima matéria?"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Você tem %s", plural(sc.PendingTasks, "tarefa pendente", "tarefas pendentes"))
	if sc.OverdueTasks > 0 {
		fmt.Fprintf(&b, ", sendo %s", plural(sc.OverdueTasks, "atrasada", "atrasadas"))
	}
	b.WriteString(".")
	if len(sc.Reminders) > 0 {
		b.WriteString("\nLembretes:\n")
		for _, rem := range sc.Reminders {
			fmt.Fprintf(&b, "- %s\n", rem)
		}
	}
	if sc.OverdueTasks > 0 {
		b.WriteString("\nSugiro começar pelas atrasadas para tirar o peso das costas.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func weeklyReportText(sc schema.StudentContext) string {
	var b strings.Builder
	b.WriteString("Relatório da sua semana:\n")
	fmt.Fprintf(&b, "- XP: %d | Sequência: %d %s\n", sc.XP, sc.StreakDays, dayWord(sc.StreakDays))
	fmt.Fprintf(&b, "- Meta semanal: %d%%", sc.GoalProgress)
	switch {
	case sc.GoalProgress >= 100:
		b.WriteString(" — meta batida, parabéns!\n")
	case sc.GoalProgress >= 50:
		b.WriteString(" — passou da metade, falta pouco.\n")
	default:
		b.WriteString(" — ainda dá tempo de recuperar.\n")
	}
	fmt.Fprintf(&b, "- Tarefas: %d pendentes, %d atrasadas\n", sc.PendingTasks, sc.OverdueTasks)
	if len(sc.WeakSubjects) > 0 {
		fmt.Fprintf(&b, "- Foco sugerido para a próxima semana: %s\n", strings.Join(sc.WeakSubjects, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func studyPlanText(sc schema.StudentContext) string {
	var b strings.Builder
	b.WriteString("Vamos montar um plano simples:\n")
	if len(sc.WeakSubjects) > 0 {
		fmt.Fprintf(&b, "1. Comece pelo que mais pesa: %s. Reserve os primeiros 25 minutos do dia para isso.\n",
			strings.Join(sc.WeakSubjects, " e "))
	} else {
		b.WriteString("1. Escolha a matéria da próxima prova e reserve os primeiros 25 minutos do dia para ela.\n")
	}
	b.WriteString("2. Intercale blocos de 25 minutos de estudo com pausas de 5 (técnica Pomodoro).\n")
	b.WriteString("3. Feche o dia com 10 minutos de revisão do que anotou.\n")
	if sc.StrongSubject != "" {
		fmt.Fprintf(&b, "4. Use %s como recompensa: estude-a por último, quando o cansaço bater.\n", sc.StrongSubject)
	}
	if sc.OverdueTasks > 0 {
		fmt.Fprintf(&b, "E atenção: há %s esperando. Encaixe-as hoje.", plural(sc.OverdueTasks, "tarefa atrasada", "tarefas atrasadas"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func memorizeText() string {
	return "Técnicas que funcionam de verdade para memorizar:\n" +
		"- Repetição espaçada: revise hoje, em 2 dias, em 1 semana e em 1 mês.\n" +
		"- Recordação ativa: feche o material e tente escrever o que lembra antes de reler.\n" +
		"- Ensine alguém: explicar em voz alta expõe o que você ainda não entendeu.\n" +
		"- Flashcards: ótimos para datas, fórmulas e vocabulário.\n" +
		"- Durma bem: a consolidação da memória acontece durante o sono."
}

func motivationText(sc schema.StudentContext) string {
	var b strings.Builder
	if sc.DisplayName != "" {
		fmt.Fprintf(&b, "%s, respira fundo. ", sc.DisplayName)
	}
	b.WriteString("Todo mundo trava às vezes, e isso não apaga o que você já construiu.")
	if sc.StreakDays > 1 {
		fmt.Fprintf(&b, " Olha só: %d dias seguidos de estudo. Isso é disciplina de verdade.", sc.StreakDays)
	}
	if sc.XP > 0 {
		fmt.Fprintf(&b, " Seus %d pontos de XP não apareceram do nada.", sc.XP)
	}
	b.WriteString(" Comece pequeno hoje: uma tarefa, um resumo, dez minutos. O resto vem atrás.")
	return b.String()
}

func dayWord(n int) string {
	if n == 1 {
		return "dia"
	}
	return "dias"
}
