package usecase

import (
	"fmt"
	"strings"

	"qisqa-backend/pkg/sheets"
)

// SystemInstruction is the fixed role given to the model on every request.
const SystemInstruction = `Siz professional ma'lumot tahlilchisisiz. Berilgan CSV ma'lumotlarini chuqur tahlil qilib, o'zbek tilida (lotin yozuvida) qisqa va aniq hisobot yozing.

Hisobot talablari:
- 2-4 paragraf bo'lishi kerak
- Aniq raqamlar va statistikalar bilan
- Amaliy tavsiyalar berish
- Rasmiy va professional uslub
- Faqat o'zbek tilida (lotin yozuvida) yozish`

// TruncationMarker follows the CSV excerpt when it was cut to the budget.
const TruncationMarker = "\n...(ma'lumotlar davomi)"

const promptTemplate = `Quyidagi Google Sheets ma'lumotlarini tahlil qiling:

SARLAVHALAR: %s
MA'LUMOTLAR SONI: %d ta qator
NAMUNA MA'LUMOTLAR:
%s

O'zbek tilida quyidagi tuzilmada hisobot yozing:

1-PARAGRAF: Ma'lumotlarning umumiy tavsifi va hajmi
2-PARAGRAF: Asosiy tendensiyalar, eng yuqori/past qiymatlar, naqshlar
3-PARAGRAF: Muhim xulosalar va amaliy tavsiyalar

Hisobotni "Qisqa Tahlil:" bilan boshlang va professional tilda yozing.`

// SheetData is the naive parse of an exported sheet.
type SheetData struct {
	Headers  []string
	DataRows []string
	Raw      string
}

// ParseSheet splits the CSV on newlines and the first line on commas.
// Quoted fields are not unescaped: a comma inside quotes splits the field.
// A trailing carriage return is dropped from every line.
func ParseSheet(raw string) SheetData {
	lines := sheets.NonBlankLines(raw)
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	data := SheetData{Raw: raw}
	if len(lines) == 0 {
		return data
	}
	data.Headers = strings.Split(lines[0], ",")
	data.DataRows = lines[1:]
	return data
}

// HasEnoughData reports whether there is a header row and at least one data row.
func (d SheetData) HasEnoughData() bool {
	return len(d.Headers) > 0 && len(d.DataRows) > 0
}

// BuildPrompt assembles the user prompt. The raw CSV excerpt is limited to
// maxChars characters; a marker is appended when it was cut.
func BuildPrompt(data SheetData, maxChars int) string {
	return fmt.Sprintf(promptTemplate,
		strings.Join(data.Headers, ", "),
		len(data.DataRows),
		truncate(data.Raw, maxChars),
	)
}

func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + TruncationMarker
}
