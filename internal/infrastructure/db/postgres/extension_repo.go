package postgres

import (
	"context"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// Role extension reads. Each returns ErrExtensionNotFound when the 1:1 row
// is missing so the profile composer can degrade gracefully and log it.

func (r *UserRepo) GetTeacherInfo(ctx context.Context, userID int64) (domain.TeacherInfo, error) {
	const q = `SELECT school, subjects FROM teachers WHERE user_id = $1 LIMIT 1;`

	var info domain.TeacherInfo
	err := r.store.QueryRow(ctx, q, userID).Scan(&info.School, &info.Subjects)
	if err != nil {
		if isNoRows(err) {
			return domain.TeacherInfo{}, domain.ErrExtensionNotFound(string(domain.RoleTeacher))
		}
		return domain.TeacherInfo{}, domain.ErrDBUnavailable(err)
	}
	return info, nil
}

func (r *UserRepo) GetTutorInfo(ctx context.Context, userID int64) (domain.TutorInfo, error) {
	const q = `SELECT relationship, phone FROM tutors WHERE user_id = $1 LIMIT 1;`

	var info domain.TutorInfo
	err := r.store.QueryRow(ctx, q, userID).Scan(&info.Relationship, &info.Phone)
	if err != nil {
		if isNoRows(err) {
			return domain.TutorInfo{}, domain.ErrExtensionNotFound(string(domain.RoleTutor))
		}
		return domain.TutorInfo{}, domain.ErrDBUnavailable(err)
	}
	return info, nil
}

func (r *UserRepo) GetStudentInfo(ctx context.Context, userID int64) (domain.StudentInfo, error) {
	const q = `SELECT school, grade, points FROM students WHERE user_id = $1 LIMIT 1;`

	var info domain.StudentInfo
	err := r.store.QueryRow(ctx, q, userID).Scan(&info.School, &info.Grade, &info.Points)
	if err != nil {
		if isNoRows(err) {
			return domain.StudentInfo{}, domain.ErrExtensionNotFound(string(domain.RoleStudent))
		}
		return domain.StudentInfo{}, domain.ErrDBUnavailable(err)
	}
	return info, nil
}
