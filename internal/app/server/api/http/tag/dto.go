package tag

import (
	"vaultkeeper/internal/domain/tag"
)

type vaultInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
}

type listOutput struct {
	Body tagListResponse
}

type tagListResponse struct {
	Tags []tag.Tag `json:"tags"`
}

type reconcileInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
	Body    tagReconcileRequest
}

type tagReconcileRequest struct {
	Tags []tagRequest `json:"tags" doc:"Желаемый набор тегов"`
}

type tagRequest struct {
	ID    string `json:"id,omitempty" doc:"ID тега; пусто для нового"`
	Label string `json:"label" doc:"Метка; пустые метки хранятся как есть"`
}

type deleteInput struct {
	VaultID string `path:"vaultID" doc:"ID хранилища"`
	TagID   string `path:"tagID" doc:"ID тега"`
}

type deleteOutput struct {
	Body tagDeleteResponse
}

type tagDeleteResponse struct {
	Deleted bool `json:"deleted"`
}
