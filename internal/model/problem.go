package model

// Problem is a catalogued fault, e.g. "No boot" in category "Hardware".
type Problem struct {
	ID        int64    `json:"id"`
	Descricao string   `json:"descricao"`
	Categoria string   `json:"categoria"`
	CreatedAt DateTime `json:"created_at"`
	UpdatedAt DateTime `json:"updated_at"`
}

type ProblemInput struct {
	Descricao *string `json:"descricao" validate:"required"`
	Categoria *string `json:"categoria" validate:"required"`
}

type ProblemPatch struct {
	Descricao *string `json:"descricao"`
	Categoria *string `json:"categoria"`
}

func (p ProblemPatch) Apply(pr *Problem) {
	if p.Descricao != nil {
		pr.Descricao = *p.Descricao
	}
	if p.Categoria != nil {
		pr.Categoria = *p.Categoria
	}
}
