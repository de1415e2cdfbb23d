package knowledge

// defaultDocuments is the fixed knowledge corpus: short notes on component
// trade-offs, costs, and architecture patterns. Built into the retriever once
// at startup and never mutated.
func defaultDocuments() []string {
	return []string{
		`Backend Frameworks:
- FastAPI: Modern Python framework, great for APIs, fast performance
- Express: Popular Node.js framework, flexible and lightweight
- Django: Full-featured Python framework, great for complex applications
- Flask: Lightweight Python framework, minimal and flexible
- Spring Boot: Java framework, enterprise-grade, comprehensive
- NestJS: TypeScript framework, scalable Node.js applications
- Go/Gin: High performance, concurrent processing, microservices`,

		`Frontend Frameworks:
- React: Component-based, large ecosystem, widely used
- Next.js: React framework with SSR, great for production apps
- Vue: Progressive framework, easy to learn, good performance
- Svelte: Compile-time framework, small bundle size
- Angular: Full-featured TypeScript framework, enterprise apps`,

		`Databases:
- PostgreSQL: Relational, ACID compliant, complex queries, open source
- MySQL: Relational, widely used, good performance
- MongoDB: NoSQL, document-based, flexible schema
- Supabase: PostgreSQL-based, includes auth and storage, great for startups
- Firebase: Real-time database, serverless, Google ecosystem
- Redis: In-memory, caching, pub/sub, fast performance
- DynamoDB: NoSQL, AWS managed, auto-scaling`,

		`Hosting Platforms:
- Vercel: Serverless, great for Next.js, auto-scaling, edge functions
- Netlify: JAMstack hosting, continuous deployment, edge network
- AWS EC2: Virtual servers, full control, scalable
- GCP Compute: Google Cloud, flexible VM instances
- Railway: Simple deployment, automatic scaling, good for small projects
- Render: Managed hosting, easy setup, good documentation
- Cloud Run: Serverless containers, pay per use, Google Cloud`,

		`Cost Optimization Guidelines:
1. Use serverless hosting (Vercel, Netlify, Cloud Run) for small to medium apps - lower costs with auto-scaling
2. Consider open-source databases (PostgreSQL, MySQL) over managed services for cost savings
3. Use caching (Redis) to reduce database load and costs
4. Start with free tiers (Supabase, Firebase) before scaling up
5. Use CDN (Cloudflare) for static assets to reduce bandwidth costs
6. Consider self-hosted solutions for high-traffic applications`,

		`Architecture Best Practices:
1. Always separate frontend and backend for scalability
2. Use a database for persistent data storage
3. Add caching layer (Redis) for high-traffic applications
4. Use authentication service for user management
5. Add monitoring for production applications
6. Implement CI/CD for automated deployments
7. Use message queues for async processing
8. Consider multi-region deployment for global apps`,

		`Common Architecture Patterns:
- Simple Web App: Frontend + Backend + Database + Hosting
- Full-Stack with Auth: Frontend + Backend + Database + Auth + Hosting
- High-Performance: Frontend + Backend + Database + Cache + CDN + Hosting
- Microservices: Multiple Backends + Database + Message Queue + Hosting`,

		`Authentication Options:
- Auth0: Comprehensive auth service, good for enterprise, paid
- Clerk: Modern auth, great UX, good developer experience
- Supabase Auth: Free tier, PostgreSQL integration, open source
- Firebase Auth: Free tier, Google ecosystem, easy integration
- NextAuth.js: For Next.js apps, free, open source
- AWS Cognito: AWS ecosystem integration, scalable`,

		`When to use which database:
- PostgreSQL: Complex queries, relational data, ACID requirements
- MySQL: Traditional relational needs, widely supported
- MongoDB: Flexible schema, JSON documents, rapid development
- Supabase: PostgreSQL with extras (auth, storage), startup-friendly
- Firebase: Real-time sync, mobile apps, serverless
- Redis: Caching, session storage, pub/sub messaging
- DynamoDB: AWS ecosystem, auto-scaling, NoSQL needs`,
	}
}
