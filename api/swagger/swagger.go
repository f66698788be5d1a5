package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Portal API",
        "description": "Exam administration portal: exams, classrooms, hall tickets, attendance and malpractice reporting",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login, registration and sessions"},
        {"name": "Student", "description": "Student dashboard and hall tickets"},
        {"name": "ExamHead", "description": "Exam, classroom and hall ticket administration"},
        {"name": "Invigilator", "description": "Attendance and malpractice reporting"},
        {"name": "Valuator", "description": "Evaluation queues"},
        {"name": "Files", "description": "Signed downloads"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "A dependency is unreachable"}}
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "302": {"description": "Redirect to /dashboard for form posts"},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register account",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/dashboard": {
            "get": {
                "tags": ["Student"],
                "summary": "Student dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/student/hall-ticket/{examId}": {
            "get": {
                "tags": ["Student"],
                "summary": "Download hall ticket",
                "produces": ["application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "examId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "PDF attachment"},
                    "404": {"description": "No hall ticket", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exam-head/dashboard": {
            "get": {
                "tags": ["ExamHead"],
                "summary": "Exam head dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/create-exam": {
            "post": {
                "tags": ["ExamHead"],
                "summary": "Create exam",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exam-head/exams/{id}/status": {
            "post": {
                "tags": ["ExamHead"],
                "summary": "Change exam status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateExamStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exam not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exam-head/classroom-builder": {
            "get": {
                "tags": ["ExamHead"],
                "summary": "List classrooms",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/classrooms": {
            "post": {
                "tags": ["ExamHead"],
                "summary": "Create classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassroomRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/classrooms/{id}": {
            "put": {
                "tags": ["ExamHead"],
                "summary": "Edit classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassroomRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/live-monitoring": {
            "get": {
                "tags": ["ExamHead"],
                "summary": "Live monitoring",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "date", "in": "query", "type": "string", "format": "date"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/hall-tickets": {
            "post": {
                "tags": ["ExamHead"],
                "summary": "Issue hall ticket",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IssueHallTicketRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already issued or seat taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exam-head/invigilators/{id}/assignment": {
            "put": {
                "tags": ["ExamHead"],
                "summary": "Assign invigilator",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignInvigilatorRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exam-head/malpractice/{id}/resolve": {
            "post": {
                "tags": ["ExamHead"],
                "summary": "Resolve malpractice report",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already resolved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exam-head/malpractice/{id}/evidence": {
            "get": {
                "tags": ["ExamHead"],
                "summary": "Evidence download link",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"302": {"description": "Redirect to a signed file URL"}}
            }
        },
        "/invigilator/dashboard": {
            "get": {
                "tags": ["Invigilator"],
                "summary": "Invigilator dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/invigilator/mark-attendance": {
            "post": {
                "tags": ["Invigilator"],
                "summary": "Mark attendance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Outcome"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Outcome"}}
                }
            }
        },
        "/invigilator/report-malpractice": {
            "post": {
                "tags": ["Invigilator"],
                "summary": "Report malpractice",
                "consumes": ["multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "student_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "required": true, "type": "string"},
                    {"name": "severity", "in": "formData", "required": true, "type": "string", "enum": ["low", "medium", "high"]},
                    {"name": "evidence", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Outcome"}},
                    "502": {"description": "Evidence upload failed", "schema": {"$ref": "#/definitions/Outcome"}}
                }
            }
        },
        "/valuator/dashboard": {
            "get": {
                "tags": ["Valuator"],
                "summary": "Valuator dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/files/{token}": {
            "get": {
                "tags": ["Files"],
                "summary": "Download stored file",
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "File contents"},
                    "403": {"description": "Invalid or expired link"},
                    "404": {"description": "File not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["STUDENT", "INVIGILATOR", "EXAM_HEAD", "VALUATOR", "DEVELOPER"]},
                "short_code": {"type": "string"},
                "branch": {"type": "string"},
                "semester": {"type": "string"}
            },
            "required": ["name", "email", "password", "role"]
        },
        "CreateExamRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "time": {"type": "string", "example": "10:00"},
                "subjects": {"type": "array", "items": {"type": "string"}},
                "total_seats": {"type": "integer", "minimum": 1}
            },
            "required": ["name", "date", "time", "subjects", "total_seats"]
        },
        "UpdateExamStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["draft", "active", "closed"]}
            },
            "required": ["status"]
        },
        "ClassroomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rows": {"type": "integer", "minimum": 1},
                "columns": {"type": "integer", "minimum": 1}
            },
            "required": ["name", "rows", "columns"]
        },
        "IssueHallTicketRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "exam_id": {"type": "string"},
                "classroom_id": {"type": "string"},
                "row": {"type": "integer", "minimum": 1},
                "seat": {"type": "integer", "minimum": 1}
            },
            "required": ["student_id", "exam_id", "classroom_id", "row", "seat"]
        },
        "AssignInvigilatorRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {"type": "string"}
            },
            "required": ["classroom_id"]
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "classroom_id": {"type": "string"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            },
            "required": ["student_id", "classroom_id", "status"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Outcome": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
