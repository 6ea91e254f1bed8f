package openai

import "fmt"

const matchResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "matches": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "defect_index": {
            "type": "integer",
            "minimum": 0
          },
          "matched_serial": {
            "type": ["integer", "null"]
          },
          "confidence": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          },
          "reason": {
            "type": "string"
          }
        },
        "required": ["defect_index", "matched_serial", "confidence", "reason"],
        "additionalProperties": false
      }
    }
  },
  "required": ["matches"],
  "additionalProperties": false
}`

const matchPromptTemplate = `You link manufacturing defect reports to entries of a QA concern catalog and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Produce exactly one entry per defect, keyed by the defect_index shown in brackets in the input.
- matched_serial must be a serial number from the provided catalog, or null when no concern describes the same underlying issue.
- A match means the defect and the concern describe the same physical problem on the same kind of part; station and area hints strengthen a match but never create one on their own.
- Confidence is a number from 0.0 (no relation) to 1.0 (identical issue). Use null with confidence 0.0 when unsure; never force a match.
- Base each reason on the defect and concern wording only. One short sentence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Catalog:
[12] "steering wheel off center" (station: T2, area: trim)
[47] "brake hose chafing against bracket" (station: C5, area: chassis)

Defects:
[0] Location: "T2" | Defect: "volant decentre" | Details: "steering misaligned" | Gravity: "3"
[1] Location: "F1" | Defect: "paint scratch door lh" | Details: "" | Gravity: "1"

Output:
{
  "matches": [
    {"defect_index":0,"matched_serial":12,"confidence":0.92,"reason":"Both report an off-center steering wheel at the trim station."},
    {"defect_index":1,"matched_serial":null,"confidence":0.0,"reason":"No catalog concern covers door paint damage."}
  ]
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(matchPromptTemplate, matchResponseSchema)
}
