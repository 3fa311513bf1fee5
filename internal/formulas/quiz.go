package formulas

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

type quizQuestion struct {
	prompt  string
	options [4]string
	answer  string
}

var quizLetters = []string{"a", "b", "c", "d"}

var quizQuestions = []quizQuestion{
	{
		prompt:  "You have $100 in a savings account earning 2% a year. After five years, how much will you have if you leave it untouched?",
		options: [4]string{"More than $102", "Exactly $102", "Less than $102", "It depends on inflation"},
		answer:  "a",
	},
	{
		prompt:  "Your account earns 1% a year and inflation is 2% a year. After one year, what can you buy with the money?",
		options: [4]string{"More than today", "Exactly the same", "Less than today", "Nothing, the account loses value"},
		answer:  "c",
	},
	{
		prompt:  "Buying a single company's stock is usually ___ than buying a stock mutual fund.",
		options: [4]string{"Safer", "Riskier", "Equally risky", "Tax-free"},
		answer:  "b",
	},
	{
		prompt:  "A 15-year mortgage typically has higher monthly payments than a 30-year one, but total interest paid is:",
		options: [4]string{"Higher", "The same", "Lower", "Unrelated to the term"},
		answer:  "c",
	},
	{
		prompt:  "If interest rates rise, what usually happens to bond prices?",
		options: [4]string{"They rise", "They fall", "They stay the same", "There is no relationship"},
		answer:  "b",
	},
	{
		prompt:  "Which of these usually carries the highest interest rate?",
		options: [4]string{"A credit card balance", "A 30-year mortgage", "A federal student loan", "A secured auto loan"},
		answer:  "a",
	},
	{
		prompt:  "About how long does money take to double at 7% a year, using the rule of 72?",
		options: [4]string{"5 years", "7 years", "10 years", "14 years"},
		answer:  "c",
	},
	{
		prompt:  "An emergency fund is commonly recommended to cover:",
		options: [4]string{"One week of expenses", "Three to six months of expenses", "Five years of expenses", "Only medical bills"},
		answer:  "b",
	},
	{
		prompt:  "What does diversification do for an investment portfolio?",
		options: [4]string{"Guarantees a profit", "Eliminates all risk", "Reduces risk from any single holding", "Increases fees"},
		answer:  "c",
	},
	{
		prompt:  "Contributing enough to get a full employer 401(k) match is like:",
		options: [4]string{"Paying an extra tax", "Earning an immediate return on that money", "Taking out a loan", "Buying insurance"},
		answer:  "b",
	},
}

func quizSpec() calculator.Spec {
	fields := make([]calculator.Field, 0, len(quizQuestions))
	for i := range quizQuestions {
		fields = append(fields, calculator.Field{
			Name:    fmt.Sprintf("q%d", i+1),
			Label:   fmt.Sprintf("Question %d", i+1),
			Kind:    calculator.Choice,
			Policy:  calculator.Optional,
			Choices: quizLetters,
			Help:    quizQuestions[i].prompt,
		})
	}

	return calculator.Spec{
		ID:       "financial-literacy-quiz",
		Title:    "Financial Literacy Quiz",
		Category: CategoryLearning,
		Summary:  "Ten questions on interest, inflation, risk and credit.",
		About:    quizAbout(),
		Fields:   fields,
		Outputs: []calculator.Output{
			output("correct", "Correct answers", calculator.Count),
			output("total", "Questions", calculator.Count),
			percentOutput("score", "Score"),
			output("grade", "Grade", calculator.Text),
		},
		Evaluate: evaluateQuiz,
	}
}

func quizAbout() string {
	var b strings.Builder
	b.WriteString("## Questions\n\nUnanswered questions count as incorrect.\n\n")
	for i, q := range quizQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.prompt)
		for j, opt := range q.options {
			fmt.Fprintf(&b, "   - **%s)** %s\n", quizLetters[j], opt)
		}
	}
	b.WriteString("\n| Score | Grade |\n|---|---|\n| 90% and above | A |\n| 80% to 89% | B |\n| 70% to 79% | C |\n| 60% to 69% | D |\n| Below 60% | F |\n")
	return b.String()
}

func evaluateQuiz(in calculator.Inputs) (calculator.Result, error) {
	correct := 0
	for i, q := range quizQuestions {
		if in.Choice(fmt.Sprintf("q%d", i+1)) == q.answer {
			correct++
		}
	}
	total := len(quizQuestions)
	score := mathutil.CalculatePercentage(float64(correct), float64(total))
	grade := letterGrade(score)

	res := calculator.NewResult()
	res.Set("correct", float64(correct))
	res.Set("total", float64(total))
	res.Set("score", score)
	res.Text["grade"] = grade
	res.Label = "Grade " + grade
	if score >= 70 {
		res.Status = calculator.StatusHealthy
	} else {
		res.Status = calculator.StatusWarning
	}
	return res, nil
}

func letterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
