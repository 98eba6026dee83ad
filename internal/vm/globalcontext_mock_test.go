package vm

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestGlobalContextCommitWrapsDatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)
	db.EXPECT().Commit().Return(errors.New("disk full"))

	global := NewGlobalContext(db, nil)
	if _, err := global.Commit(); err == nil {
		t.Fatalf("Commit() error = nil, want wrapped database error")
	}
}

func TestGlobalContextRollBackDelegatesToDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)
	db.EXPECT().RollBack().Return(nil)

	global := NewGlobalContext(db, nil)
	global.RollBack()
}

func TestGlobalContextGetBlockHeightPanicsOnDatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)
	db.EXPECT().GetSimmedBlockHeight().Return(uint64(0), errors.New("corrupt index"))

	global := NewGlobalContext(db, nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("GetBlockHeight() did not panic on database error")
		}
	}()
	global.GetBlockHeight()
}

func TestGlobalContextNestOpensSavePointOnDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)
	nested := NewMockDatabase(ctrl)
	db.EXPECT().BeginSavePoint().Return(nested, nil)

	global := NewGlobalContext(db, nil)
	child, err := global.Nest()
	if err != nil {
		t.Fatalf("Nest() error = %v", err)
	}
	if child.database != Database(nested) {
		t.Fatalf("Nest() did not wrap the save point returned by the database")
	}
}
