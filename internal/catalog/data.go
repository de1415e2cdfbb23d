package catalog

// defaultCategories is the built-in catalog. Base costs are monthly USD for a
// small production deployment; zero means a usable free tier exists.
func defaultCategories() []Category {
	return []Category{
		{
			ID:   "frontend",
			Name: "Frontend",
			Components: []Component{
				{ID: "react", Name: "React", BaseCost: 0, Icon: "react", Color: "#61dafb"},
				{ID: "nextjs", Name: "Next.js", BaseCost: 0, Icon: "nextjs", Color: "#000000"},
				{ID: "vue", Name: "Vue", BaseCost: 0, Icon: "vue", Color: "#42b883"},
				{ID: "svelte", Name: "Svelte", BaseCost: 0, Icon: "svelte", Color: "#ff3e00"},
				{ID: "angular", Name: "Angular", BaseCost: 0, Icon: "angular", Color: "#dd0031"},
			},
		},
		{
			ID:   "backend",
			Name: "Backend",
			Components: []Component{
				{ID: "fastapi", Name: "FastAPI", BaseCost: 15, Icon: "fastapi", Color: "#009688"},
				{ID: "express", Name: "Express", BaseCost: 15, Icon: "express", Color: "#68a063"},
				{ID: "django", Name: "Django", BaseCost: 20, Icon: "django", Color: "#092e20"},
				{ID: "flask", Name: "Flask", BaseCost: 12, Icon: "flask", Color: "#3f3f3f"},
				{ID: "springboot", Name: "Spring Boot", BaseCost: 40, Icon: "spring", Color: "#6db33f"},
				{ID: "nestjs", Name: "NestJS", BaseCost: 18, Icon: "nestjs", Color: "#e0234e"},
				{ID: "gin", Name: "Gin", BaseCost: 10, Icon: "go", Color: "#00add8"},
			},
		},
		{
			ID:   "database",
			Name: "Database",
			Components: []Component{
				{ID: "postgres", Name: "PostgreSQL", BaseCost: 25, Icon: "postgres", Color: "#336791"},
				{ID: "mysql", Name: "MySQL", BaseCost: 20, Icon: "mysql", Color: "#00758f"},
				{ID: "mongodb", Name: "MongoDB", BaseCost: 30, Icon: "mongodb", Color: "#47a248"},
				{ID: "supabase", Name: "Supabase", BaseCost: 25, Icon: "supabase", Color: "#3ecf8e"},
				{ID: "firebase", Name: "Firebase", BaseCost: 25, Icon: "firebase", Color: "#ffca28"},
				{ID: "dynamodb", Name: "DynamoDB", BaseCost: 35, Icon: "aws", Color: "#4053d6"},
			},
		},
		{
			ID:   "cache",
			Name: "Cache",
			Components: []Component{
				{ID: "redis", Name: "Redis", BaseCost: 15, Icon: "redis", Color: "#dc382d"},
				{ID: "memcached", Name: "Memcached", BaseCost: 12, Icon: "memcached", Color: "#2e6e41"},
				{ID: "cloudflare", Name: "Cloudflare CDN", BaseCost: 20, Icon: "cloudflare", Color: "#f38020"},
			},
		},
		{
			ID:   "auth",
			Name: "Authentication",
			Components: []Component{
				{ID: "auth0", Name: "Auth0", BaseCost: 35, Icon: "auth0", Color: "#eb5424"},
				{ID: "clerk", Name: "Clerk", BaseCost: 25, Icon: "clerk", Color: "#6c47ff"},
				{ID: "supabase-auth", Name: "Supabase Auth", BaseCost: 0, Icon: "supabase", Color: "#3ecf8e"},
				{ID: "firebase-auth", Name: "Firebase Auth", BaseCost: 0, Icon: "firebase", Color: "#ffca28"},
				{ID: "cognito", Name: "AWS Cognito", BaseCost: 15, Icon: "aws", Color: "#dd344c"},
				{ID: "nextauth", Name: "NextAuth.js", BaseCost: 0, Icon: "nextjs", Color: "#bc2cf2"},
			},
		},
		{
			ID:   "hosting",
			Name: "Hosting",
			Components: []Component{
				{ID: "vercel", Name: "Vercel", BaseCost: 20, Icon: "vercel", Color: "#000000"},
				{ID: "netlify", Name: "Netlify", BaseCost: 19, Icon: "netlify", Color: "#00c7b7"},
				{ID: "aws-ec2", Name: "AWS EC2", BaseCost: 30, Icon: "aws", Color: "#ff9900"},
				{ID: "gcp-compute", Name: "GCP Compute", BaseCost: 28, Icon: "gcp", Color: "#4285f4"},
				{ID: "railway", Name: "Railway", BaseCost: 10, Icon: "railway", Color: "#853bce"},
				{ID: "render", Name: "Render", BaseCost: 14, Icon: "render", Color: "#46e3b7"},
				{ID: "cloud-run", Name: "Cloud Run", BaseCost: 12, Icon: "gcp", Color: "#4285f4"},
			},
		},
		{
			ID:   "monitoring",
			Name: "Monitoring",
			Components: []Component{
				{ID: "prometheus", Name: "Prometheus", BaseCost: 0, Icon: "prometheus", Color: "#e6522c"},
				{ID: "grafana", Name: "Grafana", BaseCost: 0, Icon: "grafana", Color: "#f46800"},
				{ID: "datadog", Name: "Datadog", BaseCost: 31, Icon: "datadog", Color: "#632ca6"},
				{ID: "sentry", Name: "Sentry", BaseCost: 26, Icon: "sentry", Color: "#362d59"},
			},
		},
	}
}
