package research

import "github.com/xeipuuv/gojsonschema"

// profileSchema is the contract for the coordinator's synthesis output.
// Optional sections (materials, operating conditions, nozzles) may be absent;
// the hard requirements are the class, its specifications, and sourcing lists.
const profileSchema = `{
  "type": "object",
  "required": ["equipmentClass", "specifications", "manufacturers", "standards"],
  "properties": {
    "equipmentClass": { "type": "string", "minLength": 1 },
    "componentClassURI": { "type": "string" },
    "tagPrefix": { "type": "string" },
    "specifications": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["value"],
        "properties": {
          "value": {},
          "unit": { "type": "string" },
          "source": { "type": "string" }
        }
      }
    },
    "materials": {
      "type": "object",
      "properties": {
        "body": { "type": "string" },
        "internals": { "type": "string" },
        "gaskets": { "type": "string" },
        "bolting": { "type": "string" }
      }
    },
    "operatingConditions": { "type": "object" },
    "manufacturers": { "type": "array", "items": { "type": "string" } },
    "standards": { "type": "array", "items": { "type": "string" } },
    "nozzles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string" },
          "service": { "type": "string" },
          "size": { "type": "string" },
          "rating": { "type": "string" },
          "facing": { "type": "string" }
        }
      }
    }
  }
}`

var profileSchemaLoader = gojsonschema.NewStringLoader(profileSchema)
