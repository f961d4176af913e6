// internal/dataclient/schema.go
package dataclient

import "pixisphere/internal/common/validation"

const photographerProperties = `
      "id":         {"type": ["integer", "number", "string"]},
      "name":       {"type": ["string", "null"]},
      "location":   {"type": ["string", "null"]},
      "bio":        {"type": ["string", "null"]},
      "price":      {"type": ["number", "null"]},
      "rating":     {"type": ["number", "null"]},
      "profilePic": {"type": ["string", "null"]},
      "tags":       {"type": ["array", "null"], "items": {"type": "string"}}`

var collectionSchema = validation.MustCompile(`{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {` + photographerProperties + `
    }
  }
}`)

var detailSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {` + photographerProperties + `,
      "styles":    {"type": ["array", "null"], "items": {"type": "string"}},
      "portfolio": {"type": ["array", "null"], "items": {"type": "string"}},
      "reviews": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "properties": {
            "name":    {"type": "string"},
            "comment": {"type": "string"},
            "date":    {"type": "string"}
          }
        }
      }
  }
}`)
