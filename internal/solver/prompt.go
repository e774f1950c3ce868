package solver

const simpleSolvePrompt = `ATUE COMO UM RESOLVEDOR DIRETO (MODO SIMPLES).
Analise o problema na imagem e forneça APENAS o resultado final.
REGRAS:
1. PROIBIDO símbolos como '$', '*', '_' ou '#'.
2. SEM EXPLICAÇÃO. Apenas o valor ou resposta direta.
3. Use texto puro (ex: x^2).`

const explainedSolvePrompt = `ATUE COMO UM RESOLVEDOR DIRETO (MODO EXPLICAÇÃO).
Analise o problema na imagem e forneça o resultado seguido de uma explicação curta.
REGRAS:
1. PROIBIDO símbolos como '$', '*', '_' ou '#'.
2. RESPOSTA DIRETA: Comece com o resultado.
3. EXPLICAÇÃO CURTA: Máximo de 2 frases curtas sobre o processo.
4. Use texto puro.`

const (
	simpleChatInstruction    = "Você é um resolvedor ultradireto (Modo Simples). Forneça APENAS a resposta final. Sem símbolos como $ ou *."
	explainedChatInstruction = "Você é um resolvedor direto (Modo Explicação). Forneça a resposta e uma explicação de no máximo 2 frases. Sem símbolos como $ ou *."
)

// SolvePrompt промпт для решения по картинке.
func SolvePrompt(m Mode) string {
	if m == ModeSimple {
		return simpleSolvePrompt
	}
	return explainedSolvePrompt
}

// ChatInstruction системная инструкция сессии чата.
func ChatInstruction(m Mode) string {
	if m == ModeSimple {
		return simpleChatInstruction
	}
	return explainedChatInstruction
}
