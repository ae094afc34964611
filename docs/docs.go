// Package docs is the swagger document served at /swagger/*any.
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
		"/register": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Register a new user",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"409": {
						"description": "Email already registered",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.RegisterRequest"
						}
					}
				]
			}
		},
		"/login": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"401": {
						"description": "Invalid credentials",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.LoginRequest"
						}
					}
				]
			}
		},
		"/profile": {
			"get": {
				"tags": [
					"Auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				]
			}
		},
		"/user/learning-profile": {
			"put": {
				"tags": [
					"Auth"
				],
				"summary": "Update learning profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.LearningProfile"
						}
					}
				]
			}
		},
		"/health": {
			"get": {
				"tags": [
					"System"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"503": {
						"description": "Database unavailable",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				}
			}
		},
		"/quiz/{quizId}": {
			"get": {
				"tags": [
					"Quiz"
				],
				"summary": "Fetch a quiz",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Quiz not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"429": {
						"description": "Retry cooldown",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "quizId",
						"name": "quizId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/quiz/evaluate": {
			"post": {
				"tags": [
					"Quiz"
				],
				"summary": "Submit quiz answers",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "Answer count or shape mismatch",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Quiz not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"409": {
						"description": "Quiz locked or duplicate submission",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.EvaluateRequest"
						}
					}
				]
			}
		},
		"/quiz/attempts": {
			"get": {
				"tags": [
					"Quiz"
				],
				"summary": "My quiz attempts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "page",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "limit",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/quiz/attempts/{id}": {
			"get": {
				"tags": [
					"Quiz"
				],
				"summary": "One quiz attempt",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Not found or not yours",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "List courses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "title",
						"name": "title",
						"in": "query"
					},
					{
						"type": "string",
						"description": "category",
						"name": "category",
						"in": "query"
					},
					{
						"type": "string",
						"description": "level",
						"name": "level",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "page",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "limit",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/course/{courseId}": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "Course detail",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Course not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "courseId",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course/enroll/{courseId}": {
			"post": {
				"tags": [
					"Course"
				],
				"summary": "Enroll in a course",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Enrolled",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Course not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"409": {
						"description": "Already enrolled",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "courseId",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course/user": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "My courses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				]
			}
		},
		"/course/enhance/{lessonId}": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "Enhanced lesson",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Lesson or material not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"502": {
						"description": "AI provider failed",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "lessonId",
						"name": "lessonId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course/resource/{lessonId}": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "Curated resources",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Lesson not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"502": {
						"description": "AI provider failed",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "lessonId",
						"name": "lessonId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course/knn_recommendation/{courseId}": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "Recommendation after failure",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "Quiz passed or attempts remain",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "No attempt or recommended course not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"502": {
						"description": "Recommender failed",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "courseId",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/course/recommendation": {
			"get": {
				"tags": [
					"Course"
				],
				"summary": "Recommendation by profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "No candidate course",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"502": {
						"description": "Recommender failed",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				]
			}
		},
		"/teacher/quizzes": {
			"post": {
				"tags": [
					"Teacher"
				],
				"summary": "Create a quiz",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "Invalid quiz",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"403": {
						"description": "Not your course",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Course or lesson not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.CreateQuizRequest"
						}
					}
				]
			}
		},
		"/teacher/quizzes/{id}/attempts/export": {
			"get": {
				"tags": [
					"Teacher"
				],
				"summary": "Export quiz attempts",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"403": {
						"description": "Not your course",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"404": {
						"description": "Quiz not found",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/teacher/lessons/{lessonId}/material": {
			"post": {
				"tags": [
					"Teacher"
				],
				"summary": "Upload lesson material",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Success",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"400": {
						"description": "Missing or oversized file",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"403": {
						"description": "Not your course",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					},
					"415": {
						"description": "Material is not text",
						"schema": {
							"$ref": "#/definitions/util.Response"
						}
					}
				},
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "lessonId",
						"name": "lessonId",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"description": "Plain text material",
						"name": "file",
						"in": "formData",
						"required": true
					}
				],
				"consumes": [
					"multipart/form-data"
				]
			}
		}
	},
	"definitions": {
		"util.Response": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				},
				"data": {
					"type": "object"
				}
			}
		},
		"service.RegisterRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"student",
						"teacher"
					]
				},
				"ageGroup": {
					"type": "string"
				},
				"educationLevel": {
					"type": "string"
				},
				"programmingExperience": {
					"type": "string"
				},
				"learningStyle": {
					"type": "string"
				},
				"weeklyAvailability": {
					"type": "string"
				},
				"preferredCourseDuration": {
					"type": "string"
				},
				"favoriteProgrammingTopic": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"email",
				"password"
			]
		},
		"service.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"model.LearningProfile": {
			"type": "object",
			"properties": {
				"ageGroup": {
					"type": "string"
				},
				"educationLevel": {
					"type": "string"
				},
				"programmingExperience": {
					"type": "string"
				},
				"learningStyle": {
					"type": "string"
				},
				"weeklyAvailability": {
					"type": "string"
				},
				"preferredCourseDuration": {
					"type": "string"
				},
				"favoriteProgrammingTopic": {
					"type": "string"
				}
			}
		},
		"service.EvaluateRequest": {
			"type": "object",
			"properties": {
				"quizId": {
					"type": "integer"
				},
				"answers": {
					"type": "array",
					"description": "One entry per question: a string for single-select, an array of strings for multi-select",
					"items": {}
				}
			},
			"required": [
				"quizId",
				"answers"
			]
		},
		"service.QuestionRequest": {
			"type": "object",
			"properties": {
				"questionText": {
					"type": "string"
				},
				"options": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"correctAnswers": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"explanation": {
					"type": "string"
				},
				"difficultyLevel": {
					"type": "integer"
				}
			}
		},
		"service.CreateQuizRequest": {
			"type": "object",
			"properties": {
				"isCourse": {
					"type": "boolean"
				},
				"targetId": {
					"type": "integer"
				},
				"passingScore": {
					"type": "number"
				},
				"questions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/service.QuestionRequest"
					}
				}
			},
			"required": [
				"targetId"
			]
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "E-Learning Assessment API",
	Description:      "Quiz gating, scoring, progress tracking and AI-assisted remediation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
