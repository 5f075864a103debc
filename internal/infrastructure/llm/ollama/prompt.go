package ollama

import "fmt"

const answerInstruction = `You are an expert insurance policy assistant. Answer using ONLY the context below.
If the answer is not contained in the context, say "I don't know."
Show your reasoning step by step.`

func buildAnswerPrompt(question, contextBlock string) string {
	return fmt.Sprintf(`%s

Context:
%s

Question: %s
Answer:`, answerInstruction, contextBlock, question)
}
