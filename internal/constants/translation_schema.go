package constants

// TranslationResponseSchema is the JSON schema handed to providers that
// support structured output. It matches the three-field contract exactly.
const TranslationResponseSchema = `{
    "type": "object",
    "required": [
      "query",
      "explanation"
    ],
    "properties": {
      "query": {
        "type": "string",
        "description": "GraphQL query text against the news corpus schema."
      },
      "variables": {
        "type": "object",
        "description": "Flat map of query variables; omit when the query has none.",
        "additionalProperties": {
          "type": "string"
        }
      },
      "explanation": {
        "type": "string",
        "description": "One sentence describing how the request was interpreted."
      }
    },
    "additionalProperties": false
  }`
