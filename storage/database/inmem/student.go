// Package inmemdb provides an in-memory student.Repository for tests and
// local experiments.
package inmemdb

import (
	"sync"

	"github.com/jkuniv/studentportal/core/student"
)

type StudentRepository struct {
	mu    sync.RWMutex
	table map[string]student.Student
	order []string // insertion order stands in for storage-native order
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{table: make(map[string]student.Student)}
}

func (repo *StudentRepository) CheckUsernameUniqueness(username string) error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if _, ok := repo.table[username]; ok {
		return student.ErrUsernameExists
	}
	return nil
}

func (repo *StudentRepository) CreateStudent(s student.Student) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.table[s.Username]; ok {
		return student.ErrUsernameExists
	}
	repo.table[s.Username] = s
	repo.order = append(repo.order, s.Username)
	return nil
}

func (repo *StudentRepository) GetStudentByUsername(username string) (student.Student, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if s, ok := repo.table[username]; ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) GetStudentByCredentials(username, password string) (student.Student, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if s, ok := repo.table[username]; ok && s.Password == password {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	res := make([]student.Student, 0, len(repo.order))
	for _, uname := range repo.order {
		res = append(res, repo.table[uname])
	}
	return res, nil
}

func (repo *StudentRepository) UpdateStudentPassword(username, password string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if s, ok := repo.table[username]; ok {
		s.Password = password
		repo.table[username] = s
	}
	return nil
}

func (repo *StudentRepository) DeleteStudentByUsername(username string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.table[username]; !ok {
		return nil
	}
	delete(repo.table, username)
	for i, uname := range repo.order {
		if uname == username {
			repo.order = append(repo.order[:i], repo.order[i+1:]...)
			break
		}
	}
	return nil
}
