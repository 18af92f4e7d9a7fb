// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/check": {
            "post": {
                "description": "Sends the text to the language model and returns every PII item found, both structured and as \"type: value\" strings. no_pii is true when nothing was found. Fails with 503 when the model did not initialize and 500 when the model call fails.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pii"
                ],
                "summary": "Detect PII in text",
                "parameters": [
                    {
                        "description": "Text to analyze",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.TextRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Detected PII",
                        "schema": {
                            "$ref": "#/definitions/handler.CheckResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed request body",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Model call failed",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Model not available",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ingest": {
            "post": {
                "description": "Records the text in the audit trail, then detects PII. Always answers 200; \"pii\" is a record list, the string \"null\" when nothing was found, or a single {\"type\":\"error\"} record when detection failed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pii"
                ],
                "summary": "Ingest text and detect PII",
                "parameters": [
                    {
                        "description": "Text to ingest",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.TextRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Ingest outcome",
                        "schema": {
                            "$ref": "#/definitions/handler.IngestResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed request body",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.PIIRecord": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "example": "Email"
                },
                "value": {
                    "type": "string",
                    "example": "jane@example.com"
                }
            }
        },
        "handler.CheckResponse": {
            "type": "object",
            "properties": {
                "sensitive": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.PIIRecord"
                    }
                },
                "sensitive_words": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "no_pii": {
                    "type": "boolean",
                    "example": false
                }
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "example": "LLM_UNAVAILABLE"
                },
                "detail": {
                    "type": "string",
                    "example": "LLM not available: connection refused"
                }
            }
        },
        "handler.IngestResponse": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                },
                "pii": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                },
                "received": {
                    "type": "string"
                }
            }
        },
        "handler.TextRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string",
                    "example": "Contact Jane Doe at jane@example.com"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PII Guard API",
	Description:      "Detects personally identifiable information in text using a locally hosted language model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
