// Package docs регистрирует описание HTTP API в swag для Swagger UI.
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
        "/auth/signup": {
            "post": {
                "description": "Создает пользователя и устанавливает cookie auth_token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [
                    {"description": "Учетные данные", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Success"}},
                    "400": {"description": "Не заполнены поля, неверный email или пользователь существует", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "description": "Проверяет email и пароль, устанавливает cookie auth_token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [
                    {"description": "Учетные данные", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Success"}},
                    "400": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выход пользователя",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Success"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Текущая сессия",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/me.Response"}}
                }
            }
        },
        "/generateQuestions": {
            "post": {
                "description": "Генерирует вопросы по теме и сохраняет опрос текущего пользователя.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Surveys"],
                "summary": "Создание опроса",
                "parameters": [
                    {"description": "Тема опроса", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/generate.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/generate.Response"}},
                    "400": {"description": "Не задана тема", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Слишком много запросов", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/getSurvey": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Surveys"],
                "summary": "Вопросы опроса",
                "parameters": [
                    {"type": "string", "description": "ID опроса", "name": "surveyId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/get.Response"}},
                    "400": {"description": "Не задан surveyId", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Опрос не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/submitSurvey": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Surveys"],
                "summary": "Отправка ответов",
                "parameters": [
                    {"description": "Ответы", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/submit.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/submit.Response"}},
                    "400": {"description": "Не заполнены поля или число ответов не совпадает с числом вопросов", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Опрос не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/getUserSurveys": {
            "get": {
                "description": "Возвращает опросы текущего пользователя, новые первыми, с ответами.",
                "produces": ["application/json"],
                "tags": ["Surveys"],
                "summary": "Опросы пользователя",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Survey"}}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/analyzeResponses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Surveys"],
                "summary": "Сводка по ответам",
                "parameters": [
                    {"type": "string", "description": "ID опроса", "name": "surveyId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analyze.Response"}},
                    "400": {"description": "Не задан surveyId или нет ответов", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Нет сессии", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Опрос не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Исчерпана квота сервиса генерации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "504": {"description": "Сервис генерации не ответил вовремя", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Status"}},
                    "503": {"description": "База недоступна", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "user@example.com"},
                "password": {"type": "string", "example": "secret123"}
            }
        },
        "me.Response": {
            "type": "object",
            "properties": {
                "isLoggedIn": {"type": "boolean"},
                "user": {"type": "object", "properties": {"userId": {"type": "string"}}}
            }
        },
        "generate.Request": {
            "type": "object",
            "required": ["title"],
            "properties": {"title": {"type": "string"}}
        },
        "generate.Response": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"type": "string"}},
                "surveyId": {"type": "string"},
                "isFallback": {"type": "boolean"}
            }
        },
        "get.Response": {
            "type": "object",
            "properties": {"questions": {"type": "array", "items": {"type": "string"}}}
        },
        "submit.Request": {
            "type": "object",
            "required": ["surveyId", "answers"],
            "properties": {
                "surveyId": {"type": "string"},
                "answers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "submit.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "responseId": {"type": "string"}
            }
        },
        "analyze.Response": {
            "type": "object",
            "properties": {"insights": {"type": "string"}}
        },
        "health.Status": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}}
        },
        "models.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "surveyId": {"type": "string"},
                "answers": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}
            }
        },
        "models.Survey": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "questions": {"type": "array", "items": {"type": "string"}},
                "userId": {"type": "string"},
                "responses": {"type": "array", "items": {"$ref": "#/definitions/models.Response"}},
                "createdAt": {"type": "string"}
            }
        },
        "response.Success": {
            "type": "object",
            "properties": {"success": {"type": "boolean", "example": true}}
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Survey not found"},
                "details": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo общие сведения об API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Survey Insights API",
	Description:      "Опросы с генерацией вопросов и сводкой по ответам.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
