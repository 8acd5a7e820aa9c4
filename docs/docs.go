// Package docs holds the swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Service is running"}
                }
            }
        },
        "/health/detailed": {
            "get": {
                "tags": ["Health"],
                "summary": "Detailed health check",
                "description": "Checks the phonebook file and the device platform",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "All checks passed"},
                    "503": {"description": "A check failed"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Phonebook file unavailable"}
                }
            }
        },
        "/api/mobile-control": {
            "post": {
                "tags": ["Actions"],
                "summary": "Execute an action",
                "description": "Runs any action by name. Remaining body fields are the action parameters.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["action"],
                            "properties": {
                                "action": {
                                    "type": "string",
                                    "enum": ["phonebook_list", "phonebook_add", "phonebook_delete", "call", "sms", "volume", "brightness", "theme"]
                                },
                                "contact_name": {"type": "string", "example": "Bob"},
                                "phone_number": {"type": "string", "example": "555-0100"},
                                "contact_alias": {"type": "string"},
                                "sms_message": {"type": "string"},
                                "volume_level": {"type": "integer", "minimum": 0, "maximum": 100},
                                "brightness_level": {"type": "integer", "minimum": 0, "maximum": 100},
                                "theme_mode": {"type": "string", "enum": ["light", "dark", "auto"]}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/Result"}},
                    "400": {"description": "Invalid parameters or unknown action", "schema": {"$ref": "#/definitions/Result"}},
                    "404": {"description": "Contact does not exist", "schema": {"$ref": "#/definitions/Result"}},
                    "409": {"description": "Contact already exists", "schema": {"$ref": "#/definitions/Result"}},
                    "500": {"description": "Phonebook could not be written", "schema": {"$ref": "#/definitions/Result"}},
                    "502": {"description": "Platform command failed", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/phonebook": {
            "get": {
                "tags": ["Phonebook"],
                "summary": "List contacts",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Contacts", "schema": {"$ref": "#/definitions/Result"}}
                }
            },
            "post": {
                "tags": ["Phonebook"],
                "summary": "Add a contact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "contact",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["name", "phone"],
                            "properties": {
                                "name": {"type": "string"},
                                "phone": {"type": "string"},
                                "alias": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Added", "schema": {"$ref": "#/definitions/Result"}},
                    "400": {"description": "Missing name or phone", "schema": {"$ref": "#/definitions/Result"}},
                    "409": {"description": "Contact already exists", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/phonebook/{name}": {
            "delete": {
                "tags": ["Phonebook"],
                "summary": "Delete a contact",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "name", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/Result"}},
                    "404": {"description": "Contact does not exist", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/system/volume": {
            "post": {
                "tags": ["System"],
                "summary": "Set output volume",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "level", "required": true, "schema": {"$ref": "#/definitions/LevelRequest"}}
                ],
                "responses": {
                    "200": {"description": "Volume set", "schema": {"$ref": "#/definitions/Result"}},
                    "400": {"description": "Level out of range", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/system/brightness": {
            "post": {
                "tags": ["System"],
                "summary": "Set screen brightness",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "level", "required": true, "schema": {"$ref": "#/definitions/LevelRequest"}}
                ],
                "responses": {
                    "200": {"description": "Brightness set", "schema": {"$ref": "#/definitions/Result"}},
                    "400": {"description": "Level out of range", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/system/theme": {
            "post": {
                "tags": ["System"],
                "summary": "Set system theme",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "theme",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "mode": {"type": "string", "enum": ["light", "dark", "auto"]}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Theme set", "schema": {"$ref": "#/definitions/Result"}},
                    "400": {"description": "Invalid mode", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/communication/call": {
            "post": {
                "tags": ["Communication"],
                "summary": "Dial a number",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "call",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "phone": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Dialing", "schema": {"$ref": "#/definitions/Result"}},
                    "502": {"description": "Platform command failed", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        },
        "/api/communication/sms": {
            "post": {
                "tags": ["Communication"],
                "summary": "Open an SMS draft",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "sms",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "phone": {"type": "string"},
                                "message": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Draft opened", "schema": {"$ref": "#/definitions/Result"}},
                    "502": {"description": "Platform command failed", "schema": {"$ref": "#/definitions/Result"}}
                }
            }
        }
    },
    "definitions": {
        "Contact": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "alias": {"type": "string"}
            }
        },
        "LevelRequest": {
            "type": "object",
            "properties": {
                "level": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Contact"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "mobilectl API",
	Description:      "Phonebook management and device control",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
