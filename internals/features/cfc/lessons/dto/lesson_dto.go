package dto

import "time"

type CreateLessonRequest struct {
	StudentID       string    `json:"student_id" validate:"required,uuid4"`
	InstructorID    string    `json:"instructor_id" validate:"required,uuid4"`
	Date            time.Time `json:"date" validate:"required"`
	StartTime       string    `json:"start_time" validate:"required,len=5"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=10,max=240"`
	Type            string    `json:"type" validate:"required,oneof=pratica_a pratica_b exame_a exame_b"`
	Notes           string    `json:"notes"`
}

type UpdateLessonRequest struct {
	InstructorID    *string    `json:"instructor_id" validate:"omitempty,uuid4"`
	Date            *time.Time `json:"date"`
	StartTime       *string    `json:"start_time" validate:"omitempty,len=5"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=10,max=240"`
	Type            *string    `json:"type" validate:"omitempty,oneof=pratica_a pratica_b exame_a exame_b"`
	Notes           *string    `json:"notes"`
}

type UpdateLessonStatusRequest struct {
	// agendada nunca é destino: aula nasce agendada e não volta a ser
	Status    string     `json:"status" validate:"required,oneof=realizada cancelada reagendada"`
	Date      *time.Time `json:"date"`
	StartTime *string    `json:"start_time" validate:"omitempty,len=5"`
}

type LessonResponse struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"student_id"`
	StudentName     string    `json:"student_name,omitempty"`
	InstructorID    string    `json:"instructor_id"`
	InstructorName  string    `json:"instructor_name,omitempty"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Value           int64     `json:"value"`
	Notes           string    `json:"notes,omitempty"`
}

// Relatório de pagamento por instrutor: aulas realizadas no período
type InstructorReportRow struct {
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	PraticaCount   int    `json:"pratica_count"`
	ExameCount     int    `json:"exame_count"`
	TotalValue     int64  `json:"total_value"`
}
