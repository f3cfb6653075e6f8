package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core/student"
)

var (
	selectColumns = strings.Join(student.Columns(), ", ")
	insertQuery   = buildInsertQuery()
)

func buildInsertQuery() string {
	cols := student.Columns()
	named := make([]string, len(cols))
	for i, c := range cols {
		named[i] = ":" + c
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(cols, ", "), strings.Join(named, ", "),
	)
}

// StudentRepository is the sqlite-backed student.Repository.
type StudentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (repo *StudentRepository) CheckUsernameUniqueness(username string) error {
	var exists bool
	q := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE username=?)", tableName)
	if err := repo.db.Get(&exists, q, username); err != nil {
		return errors.Wrap(err, "checking username")
	}
	if exists {
		return student.ErrUsernameExists
	}
	return nil
}

func (repo *StudentRepository) CreateStudent(s student.Student) error {
	if _, err := repo.db.NamedExec(insertQuery, s); err != nil {
		if isUniqueViolation(err) {
			return student.ErrUsernameExists
		}
		return errors.Wrap(err, "inserting student")
	}
	return nil
}

func (repo *StudentRepository) GetStudentByUsername(username string) (student.Student, error) {
	var s student.Student
	q := fmt.Sprintf("SELECT %s FROM %s WHERE username=?", selectColumns, tableName)
	if err := repo.db.Get(&s, q, username); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return s, nil
}

func (repo *StudentRepository) GetStudentByCredentials(username, password string) (student.Student, error) {
	var s student.Student
	q := fmt.Sprintf("SELECT %s FROM %s WHERE username=? AND password=?", selectColumns, tableName)
	if err := repo.db.Get(&s, q, username, password); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student by credentials")
	}
	return s, nil
}

func (repo *StudentRepository) QueryAllStudents() ([]student.Student, error) {
	var res []student.Student
	q := fmt.Sprintf("SELECT %s FROM %s", selectColumns, tableName)
	if err := repo.db.Select(&res, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return res, nil
}

func (repo *StudentRepository) UpdateStudentPassword(username, password string) error {
	q := fmt.Sprintf("UPDATE %s SET password=? WHERE username=?", tableName)
	if _, err := repo.db.Exec(q, password, username); err != nil {
		return errors.Wrap(err, "updating password")
	}
	return nil
}

func (repo *StudentRepository) DeleteStudentByUsername(username string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE username=?", tableName)
	if _, err := repo.db.Exec(q, username); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
