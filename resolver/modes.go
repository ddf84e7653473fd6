package resolver

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/topic"
)

// exercisePools holds ready-made practice questions per subject area. The
// generic pool covers queries with no recognized topic.
var exercisePools = map[schema.SubjectArea][]string{
	schema.AreaExact: {
		"Resolva: se 3x + 5 = 20, quanto vale x?",
		"Um trem percorre 240 km em 3 horas. Qual a velocidade média em km/h?",
		"Calcule a área de um triângulo com base 8 cm e altura 5 cm.",
		"Qual é o resultado de 2⁵ − 3²?",
	},
	schema.AreaNature: {
		"Explique com suas palavras a diferença entre mitose e meiose.",
		"Por que o gelo flutua na água? Relacione com a densidade.",
		"Cite duas funções das mitocôndrias na célula.",
		"O que acontece com a pressão de um gás quando o volume diminui à temperatura constante?",
	},
	schema.AreaHumanities: {
		"Quais foram as principais causas da Revolução Francesa?",
		"Explique o que é êxodo rural e cite uma consequência dele.",
		"Diferencie clima de tempo e dê um exemplo de cada.",
		"O que caracteriza um regime democrático?",
	},
	schema.AreaLanguages: {
		"Reescreva a frase 'Os menino foi na escola' corrigindo a concordância.",
		"Identifique o sujeito em: 'Choveu muito ontem à noite.'",
		"Traduza para o inglês: 'Eu estudo todos os dias.'",
		"Qual a diferença entre 'mas' e 'mais'? Dê um exemplo de cada.",
	},
}

var genericExercises = []string{
	"Escolha um conteúdo que você estudou hoje e escreva um resumo de três linhas sem consultar o material.",
	"Monte três perguntas sobre a última aula que você teve e tente respondê-las de cabeça.",
	"Explique em voz alta, como se ensinasse alguém, o último assunto que você revisou.",
}

var socraticPrompts = []string{
	"Antes de eu responder: o que você já sabe sobre esse assunto? Tente formular uma hipótese.",
	"Boa pergunta. E se fosse o contrário, o que mudaria? Pense um minuto antes de seguir.",
	"Vamos por partes: qual é a menor pergunta dentro dessa pergunta? Comece por ela.",
	"O que te levou a essa dúvida? Às vezes o caminho até a pergunta já contém metade da resposta.",
}

var debatePrompts = []string{
	"Vou assumir o lado contrário para treinarmos: defenda sua posição com dois argumentos e eu rebato.",
	"Todo bom debate começa com definições. Defina os termos centrais da sua tese antes de argumentar.",
	"Liste o argumento mais forte CONTRA a sua posição. Saber rebatê-lo é o que vence debates.",
}

var brainstormPrompts = []string{
	"Regra do brainstorm: quantidade antes de qualidade. Jogue 10 ideias sem filtrar, depois escolhemos as 3 melhores.",
	"Tente o caminho inverso: como você garantiria o FRACASSO desse projeto? Inverta cada item e terá um plano.",
	"Combine duas ideias que não têm nada a ver uma com a outra e veja o que sai. As melhores soluções nascem assim.",
}

// modeStage serves practice and teaching-mode content. An active mode takes
// precedence over the classified intent.
func (r *Resolver) modeStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	switch req.Mode {
	case schema.ModeSocratic:
		return schema.Answered(pick(req.Rand, socraticPrompts)), true
	case schema.ModeDebate:
		return schema.Answered(pick(req.Rand, debatePrompts)), true
	case schema.ModeBrainstorm:
		return schema.Answered(pick(req.Rand, brainstormPrompts)), true
	}
	if req.Mode != schema.ModeExercise && in != schema.IntentExercise {
		return schema.Outcome{}, false
	}

	pool := genericExercises
	var areaName string
	if area, matched, ok := topic.AreaOf(topics); ok {
		if p, ok := exercisePools[area]; ok {
			pool = p
			areaName = topic.Label(matched)
		}
	}
	var b strings.Builder
	if areaName != "" {
		fmt.Fprintf(&b, "Aqui vai uma questão de %s para você praticar:\n\n", areaName)
	} else {
		b.WriteString("Aqui vai um exercício para você praticar:\n\n")
	}
	b.WriteString(pick(req.Rand, pool))
	b.WriteString("\n\nQuando terminar, me mande sua resposta que eu comento!")
	return schema.Answered(b.String()), true
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}
