// Package catalog holds the OpenAPI document served at /swagger/. It is
// kept in the layout swag produces so that swag.Register can serve it.
package catalog

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "LTP Labs"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "definitions": {
        "LoginRequest": {
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "LoginResponse": {
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "expires_in": {
                    "type": "integer"
                },
                "token_type": {
                    "type": "string"
                },
                "user": {
                    "properties": {
                        "email": {
                            "type": "string"
                        },
                        "id": {
                            "type": "string"
                        },
                        "name": {
                            "type": "string"
                        },
                        "role": {
                            "type": "string"
                        }
                    },
                    "type": "object"
                }
            },
            "type": "object"
        },
        "dbsdk.Cliente": {
            "properties": {
                "criado_em": {
                    "type": "string"
                },
                "criado_por": {
                    "type": "string"
                },
                "data_expiracao": {
                    "type": "string"
                },
                "data_registo": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dbsdk.HealthChecks": {
            "properties": {
                "database": {
                    "type": "string"
                },
                "migrations": {
                    "type": "string"
                },
                "upstream": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dbsdk.HealthResponse": {
            "properties": {
                "checks": {
                    "$ref": "#/definitions/dbsdk.HealthChecks"
                },
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dbsdk.Pedido": {
            "properties": {
                "cliente_id": {
                    "type": "string"
                },
                "criado_em": {
                    "type": "string"
                },
                "estado": {
                    "type": "string"
                },
                "gerido_por": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "tipo_pedido": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dbsdk.ResolvePedidoRequest": {
            "properties": {
                "admin_id": {
                    "type": "string"
                },
                "nova_data_expiracao": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.CreateClienteInput": {
            "properties": {
                "criado_por": {
                    "type": "string"
                },
                "data_expiracao": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "httpx.ErrorResponse": {
            "properties": {
                "error": {
                    "type": "string"
                },
                "error_description": {
                    "type": "string"
                }
            },
            "type": "object"
        }
    },
    "paths": {
        "/api/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Forwarded to the authentication service. Admins are looked up first, then clients; expired clients are refused.",
                "parameters": [
                    {
                        "description": "Credentials",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/LoginResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                },
                "summary": "Log in",
                "tags": [
                    "Auth"
                ]
            }
        },
        "/api/clientes/": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Hashes the password, stamps data_registo with the current time and stores the client.",
                "parameters": [
                    {
                        "description": "Client",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CreateClienteInput"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.Cliente"
                        }
                    },
                    "400": {
                        "description": "validation failure or duplicate email",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create a client",
                "tags": [
                    "Clientes"
                ]
            }
        },
        "/api/pedidos/{id}/approve": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Approves the request. Renewals extend the client's access by 30 days unless nova_data_expiracao is given.",
                "parameters": [
                    {
                        "description": "Request ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Acting admin and optional new expiration",
                        "in": "body",
                        "name": "body",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.ResolvePedidoRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.Pedido"
                        }
                    },
                    "400": {
                        "description": "already resolved or invalid admin",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Approve a pending request",
                "tags": [
                    "Pedidos"
                ]
            }
        },
        "/api/pedidos/{id}/reject": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Acting admin",
                        "in": "body",
                        "name": "body",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.ResolvePedidoRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.Pedido"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Reject a pending request",
                "tags": [
                    "Pedidos"
                ]
            }
        },
        "/livez": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.HealthResponse"
                        }
                    }
                },
                "summary": "Liveness probe",
                "tags": [
                    "Health"
                ]
            }
        },
        "/readyz": {
            "get": {
                "description": "Ready when the database service answers its own readiness probe.",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/dbsdk.HealthResponse"
                        }
                    }
                },
                "summary": "Readiness probe",
                "tags": [
                    "Health"
                ]
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT issued by POST /api/auth/login. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "LTP Labs e-Catalog API",
	Description:      "Public gateway of the demo catalog. Routes under /api/{pedidos,clientes,admin,logs,demos}\nare forwarded to the database service; /api/auth and /api/users to the authentication service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
